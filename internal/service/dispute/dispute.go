package dispute

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
	ErrConflict   = errors.New("conflict")   // 409
)

type Service struct {
	Repo *repo.GormRepo
}

// Open raises a dispute on the customer's own order. Orders the requester
// does not own read as missing.
func (s *Service) Open(ctx context.Context, orderID, userID uint, reason string) (*models.Dispute, error) {
	if _, err := s.Repo.GetCustomerOrder(ctx, orderID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}

	d := &models.Dispute{
		OrderID:        orderID,
		RaisedByUserID: userID,
		Status:         models.DisputeOpen,
		Reason:         reason,
	}
	if err := s.Repo.CreateDispute(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Resolve moves a dispute along open -> under_review -> resolved|rejected.
// resolution_details is mandatory for the two terminal states, validated
// before anything is written. Terminal disputes cannot transition again.
func (s *Service) Resolve(ctx context.Context, disputeID, adminID uint, status, details string) (*models.Dispute, error) {
	switch status {
	case models.DisputeUnderReview, models.DisputeResolved, models.DisputeRejected:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	terminal := status == models.DisputeResolved || status == models.DisputeRejected
	if terminal && details == "" {
		return nil, fmt.Errorf("%w: resolution_details is required for %s", ErrValidation, status)
	}

	d, err := s.Repo.GetDispute(ctx, disputeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: dispute %d", ErrNotFound, disputeID)
	}
	if err != nil {
		return nil, err
	}

	if d.Status == models.DisputeResolved || d.Status == models.DisputeRejected {
		return nil, fmt.Errorf("%w: dispute already %s", ErrConflict, d.Status)
	}

	d.Status = status
	if terminal {
		now := time.Now()
		d.ResolutionDetails = details
		d.ResolvedByUserID = &adminID
		d.ResolvedAt = &now
	}

	if err := s.Repo.SaveDispute(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}
