package repo

import (
	"context"

	"github.com/shopfusion/backend/internal/models"
)

func (r *GormRepo) GetDispute(ctx context.Context, id uint) (*models.Dispute, error) {
	var dispute models.Dispute
	if err := r.DB.WithContext(ctx).First(&dispute, id).Error; err != nil {
		return nil, err
	}
	return &dispute, nil
}

func (r *GormRepo) CreateDispute(ctx context.Context, dispute *models.Dispute) error {
	return r.DB.WithContext(ctx).Create(dispute).Error
}

func (r *GormRepo) SaveDispute(ctx context.Context, dispute *models.Dispute) error {
	return r.DB.WithContext(ctx).Save(dispute).Error
}
