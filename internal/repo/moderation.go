package repo

import (
	"context"

	"github.com/shopfusion/backend/internal/models"
)

func (r *GormRepo) GetModeration(ctx context.Context, id uint) (*models.ModerationEntry, error) {
	var entry models.ModerationEntry
	if err := r.DB.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *GormRepo) GetModerationByProduct(ctx context.Context, productID uint) (*models.ModerationEntry, error) {
	var entry models.ModerationEntry
	err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *GormRepo) CreateModeration(ctx context.Context, entry *models.ModerationEntry) error {
	return r.DB.WithContext(ctx).Create(entry).Error
}

func (r *GormRepo) SaveModeration(ctx context.Context, entry *models.ModerationEntry) error {
	return r.DB.WithContext(ctx).Save(entry).Error
}

func (r *GormRepo) ListModerationByStatus(ctx context.Context, status string, offset, limit int) (int64, []models.ModerationEntry, error) {
	q := r.DB.WithContext(ctx).Model(&models.ModerationEntry{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var entries []models.ModerationEntry
	if err := q.Order("id ASC").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return 0, nil, err
	}
	return total, entries, nil
}
