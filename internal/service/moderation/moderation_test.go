package moderation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shopfusion/backend/internal/models"
	"github.com/shopfusion/backend/internal/repo"
	"github.com/shopfusion/backend/internal/testutil"
)

func TestReviewApprove(t *testing.T) {
	db := testutil.NewDB(t)
	r := repo.New(db)
	svc := &Service{Repo: r}
	ctx := context.Background()

	seller := testutil.SeedUser(t, db, "seller", models.RoleSeller)
	admin := testutil.SeedUser(t, db, "admin", models.RoleAdmin)
	p := testutil.SeedProduct(t, db, seller.ID, "Couch", 300, 2, models.ModerationPending)

	entry, err := svc.Review(ctx, p.Moderation.ID, admin.ID, models.ModerationApproved, "")
	require.NoError(t, err)
	require.Equal(t, models.ModerationApproved, entry.Status)
	require.NotNil(t, entry.AdminID)
	require.Equal(t, admin.ID, *entry.AdminID)
	require.NotNil(t, entry.ReviewedAt)
}

func TestReviewRejectRequiresFeedback(t *testing.T) {
	db := testutil.NewDB(t)
	r := repo.New(db)
	svc := &Service{Repo: r}
	ctx := context.Background()

	seller := testutil.SeedUser(t, db, "seller", models.RoleSeller)
	admin := testutil.SeedUser(t, db, "admin", models.RoleAdmin)
	p := testutil.SeedProduct(t, db, seller.ID, "Rug", 80, 1, models.ModerationPending)

	_, err := svc.Review(ctx, p.Moderation.ID, admin.ID, models.ModerationRejected, "")
	require.ErrorIs(t, err, ErrValidation)

	// The failed call must not have touched the row.
	entry, err := r.GetModeration(ctx, p.Moderation.ID)
	require.NoError(t, err)
	require.Equal(t, models.ModerationPending, entry.Status)
	require.Nil(t, entry.AdminID)

	entry, err = svc.Review(ctx, p.Moderation.ID, admin.ID, models.ModerationRejected, "blurry photos")
	require.NoError(t, err)
	require.Equal(t, models.ModerationRejected, entry.Status)
	require.Equal(t, "blurry photos", entry.Feedback)
}

func TestReviewValidation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := &Service{Repo: repo.New(db)}
	ctx := context.Background()

	_, err := svc.Review(ctx, 1, 1, "pending", "")
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Review(ctx, 9999, 1, models.ModerationApproved, "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListQueue(t *testing.T) {
	db := testutil.NewDB(t)
	svc := &Service{Repo: repo.New(db)}
	ctx := context.Background()

	seller := testutil.SeedUser(t, db, "seller", models.RoleSeller)
	testutil.SeedProduct(t, db, seller.ID, "A", 10, 1, models.ModerationPending)
	testutil.SeedProduct(t, db, seller.ID, "B", 10, 1, models.ModerationPending)
	testutil.SeedProduct(t, db, seller.ID, "C", 10, 1, models.ModerationApproved)

	total, entries, err := svc.ListQueue(ctx, models.ModerationPending, 0, 20)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, entries, 2)

	total, _, err = svc.ListQueue(ctx, "", 0, 20)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)

	_, _, err = svc.ListQueue(ctx, "bogus", 0, 20)
	require.ErrorIs(t, err, ErrValidation)
}
