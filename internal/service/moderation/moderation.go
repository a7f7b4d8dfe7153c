package moderation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shopfusion/backend/internal/models"
	"github.com/shopfusion/backend/internal/repo"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
)

type Service struct {
	Repo *repo.GormRepo
}

// Review applies an admin decision to a moderation entry. All validation
// happens before anything is persisted; in particular a rejection without
// feedback never reaches the database. The product row itself is untouched:
// visibility is derived from this entry, nothing is denormalized.
func (s *Service) Review(ctx context.Context, moderationID, adminID uint, status, feedback string) (*models.ModerationEntry, error) {
	if status != models.ModerationApproved && status != models.ModerationRejected {
		return nil, fmt.Errorf("%w: status must be approved or rejected", ErrValidation)
	}
	if status == models.ModerationRejected && feedback == "" {
		return nil, fmt.Errorf("%w: feedback is required when rejecting", ErrValidation)
	}

	entry, err := s.Repo.GetModeration(ctx, moderationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: moderation entry %d", ErrNotFound, moderationID)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry.Status = status
	entry.Feedback = feedback
	entry.AdminID = &adminID
	entry.ReviewedAt = &now

	if err := s.Repo.SaveModeration(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) ListQueue(ctx context.Context, status string, offset, limit int) (int64, []models.ModerationEntry, error) {
	switch status {
	case "", models.ModerationPending, models.ModerationApproved, models.ModerationRejected:
	default:
		return 0, nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.Repo.ListModerationByStatus(ctx, status, offset, limit)
}
