package repo

import (
	"context"

	"github.com/shopfusion/backend/internal/models"
)

func (r *GormRepo) GetSettings(ctx context.Context) (map[string]string, error) {
	var rows []models.Setting
	if err := r.DB.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]string, len(rows))
	for _, s := range rows {
		out[s.Key] = s.Value
	}
	return out, nil
}
