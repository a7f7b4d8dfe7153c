package repo

import (
	"context"

	"github.com/shopfusion/backend/internal/models"
)

func (r *GormRepo) FindReview(ctx context.Context, productID, userID uint) (*models.Review, error) {
	var review models.Review
	err := r.DB.WithContext(ctx).
		Where("product_id = ? AND user_id = ?", productID, userID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *GormRepo) CreateReview(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Create(review).Error
}

func (r *GormRepo) ListReviews(ctx context.Context, productID uint, offset, limit int) (int64, []models.Review, error) {
	q := r.DB.WithContext(ctx).Model(&models.Review{}).Where("product_id = ?", productID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var reviews []models.Review
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&reviews).Error; err != nil {
		return 0, nil, err
	}
	return total, reviews, nil
}
