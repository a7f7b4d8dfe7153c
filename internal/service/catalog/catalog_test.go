package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shopfusion/backend/internal/models"
	"github.com/shopfusion/backend/internal/repo"
	"github.com/shopfusion/backend/internal/testutil"
)

func names(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestListProductsByRole(t *testing.T) {
	db := testutil.NewDB(t)
	svc := &Service{Repo: repo.New(db)}
	ctx := context.Background()

	alice := testutil.SeedUser(t, db, "alice", models.RoleSeller)
	bob := testutil.SeedUser(t, db, "bob", models.RoleSeller)

	testutil.SeedProduct(t, db, alice.ID, "alice-approved", 10, 5, models.ModerationApproved)
	testutil.SeedProduct(t, db, alice.ID, "alice-pending", 10, 5, models.ModerationPending)
	testutil.SeedProduct(t, db, alice.ID, "alice-rejected", 10, 5, models.ModerationRejected)
	testutil.SeedProduct(t, db, bob.ID, "bob-approved", 10, 5, models.ModerationApproved)
	testutil.SeedProduct(t, db, bob.ID, "bob-pending", 10, 5, models.ModerationPending)

	// Guest: approved only, regardless of the requested status.
	total, items, err := svc.ListProducts(ctx, "", 0, Filters{}, 0, 20)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.ElementsMatch(t, []string{"alice-approved", "bob-approved"}, names(items))

	// Seller: everyone's approved plus own pending and rejected.
	total, items, err = svc.ListProducts(ctx, models.RoleSeller, alice.ID, Filters{}, 0, 20)
	require.NoError(t, err)
	require.EqualValues(t, 4, total)
	require.ElementsMatch(t,
		[]string{"alice-approved", "alice-pending", "alice-rejected", "bob-approved"},
		names(items))

	// Seller asking for pending sees only their own pending rows.
	_, items, err = svc.ListProducts(ctx, models.RoleSeller, alice.ID, Filters{Status: models.ModerationPending}, 0, 20)
	require.NoError(t, err)
	require.Equal(t, []string{"alice-pending"}, names(items))

	// Admin sees everything.
	total, _, err = svc.ListProducts(ctx, models.RoleAdmin, 99, Filters{}, 0, 20)
	require.NoError(t, err)
	require.EqualValues(t, 5, total)

	// Admin can narrow to a single status.
	_, items, err = svc.ListProducts(ctx, models.RoleAdmin, 99, Filters{Status: models.ModerationRejected}, 0, 20)
	require.NoError(t, err)
	require.Equal(t, []string{"alice-rejected"}, names(items))
}

func TestListProductsRejectsUnknownStatus(t *testing.T) {
	db := testutil.NewDB(t)
	svc := &Service{Repo: repo.New(db)}

	_, _, err := svc.ListProducts(context.Background(), models.RoleAdmin, 1, Filters{Status: "bogus"}, 0, 20)
	require.ErrorIs(t, err, ErrValidation)
}

func TestGetProductHidesUnapproved(t *testing.T) {
	db := testutil.NewDB(t)
	svc := &Service{Repo: repo.New(db)}
	ctx := context.Background()

	seller := testutil.SeedUser(t, db, "seller", models.RoleSeller)
	pending := testutil.SeedProduct(t, db, seller.ID, "pending", 10, 5, models.ModerationPending)
	approved := testutil.SeedProduct(t, db, seller.ID, "approved", 10, 5, models.ModerationApproved)

	// Hidden products read as missing for guests and customers.
	_, err := svc.GetProduct(ctx, "", 0, pending.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetProduct(ctx, models.RoleCustomer, 42, pending.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// The owner and admins still see them.
	got, err := svc.GetProduct(ctx, models.RoleSeller, seller.ID, pending.ID)
	require.NoError(t, err)
	require.Equal(t, "pending", got.Name)

	got, err = svc.GetProduct(ctx, models.RoleAdmin, 99, pending.ID)
	require.NoError(t, err)
	require.Equal(t, "pending", got.Name)

	// Approved products are public.
	got, err = svc.GetProduct(ctx, "", 0, approved.ID)
	require.NoError(t, err)
	require.Equal(t, "approved", got.Name)
}

func TestCreateProductStartsPending(t *testing.T) {
	db := testutil.NewDB(t)
	svc := &Service{Repo: repo.New(db)}
	ctx := context.Background()

	seller := testutil.SeedUser(t, db, "seller", models.RoleSeller)

	p, err := svc.CreateProduct(ctx, seller.ID, CreateRequest{Name: "Table", Price: 99.90, Stock: 3})
	require.NoError(t, err)
	require.NotNil(t, p.Moderation)
	require.Equal(t, models.ModerationPending, p.Moderation.Status)
	require.Equal(t, seller.ID, p.SellerID)

	_, err = svc.CreateProduct(ctx, seller.ID, CreateRequest{Name: "", Price: 10})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateProduct(ctx, seller.ID, CreateRequest{Name: "Free", Price: 0})
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateProductOwnership(t *testing.T) {
	db := testutil.NewDB(t)
	svc := &Service{Repo: repo.New(db)}
	ctx := context.Background()

	owner := testutil.SeedUser(t, db, "owner", models.RoleSeller)
	other := testutil.SeedUser(t, db, "other", models.RoleSeller)
	admin := testutil.SeedUser(t, db, "admin", models.RoleAdmin)
	p := testutil.SeedProduct(t, db, owner.ID, "Shelf", 20, 4, models.ModerationApproved)

	newName := "Bookshelf"
	_, err := svc.UpdateProduct(ctx, other, p.ID, UpdateRequest{Name: &newName})
	require.ErrorIs(t, err, ErrForbidden)

	got, err := svc.UpdateProduct(ctx, owner, p.ID, UpdateRequest{Name: &newName})
	require.NoError(t, err)
	require.Equal(t, "Bookshelf", got.Name)

	newPrice := 25.0
	got, err = svc.UpdateProduct(ctx, admin, p.ID, UpdateRequest{Price: &newPrice})
	require.NoError(t, err)
	require.InDelta(t, 25.0, got.Price, 0.001)

	bad := -1.0
	_, err = svc.UpdateProduct(ctx, owner, p.ID, UpdateRequest{Price: &bad})
	require.ErrorIs(t, err, ErrValidation)
}

func TestDeleteProduct(t *testing.T) {
	db := testutil.NewDB(t)
	svc := &Service{Repo: repo.New(db)}
	ctx := context.Background()

	owner := testutil.SeedUser(t, db, "owner", models.RoleSeller)
	other := testutil.SeedUser(t, db, "other", models.RoleSeller)
	p := testutil.SeedProduct(t, db, owner.ID, "Stool", 15, 2, models.ModerationApproved)

	require.ErrorIs(t, svc.DeleteProduct(ctx, other, p.ID), ErrForbidden)
	require.NoError(t, svc.DeleteProduct(ctx, owner, p.ID))

	_, err := svc.GetProduct(ctx, models.RoleSeller, owner.ID, p.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
