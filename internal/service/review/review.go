package review

import (
	"context"
	"errors"
	"fmt"

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

// AddReview accepts one review per user per product, on approved products
// only.
func (s *Service) AddReview(ctx context.Context, productID, userID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	product, err := s.Repo.GetProduct(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}
	if err != nil {
		return nil, err
	}
	if product.Moderation == nil || product.Moderation.Status != models.ModerationApproved {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}

	if _, err := s.Repo.FindReview(ctx, productID, userID); err == nil {
		return nil, fmt.Errorf("%w: already reviewed", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	r := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.Repo.CreateReview(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) ListReviews(ctx context.Context, productID uint, offset, limit int) (int64, []models.Review, error) {
	return s.Repo.ListReviews(ctx, productID, offset, limit)
}
