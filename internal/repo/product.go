package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopfusion/backend/internal/models"
)

// ProductQuery is the predicate produced by the catalog visibility filter.
// Statuses restricts everyone; when OwnerID is set, the owner's products with
// OwnerStatuses are additionally visible (the seller OR-branch).
type ProductQuery struct {
	Statuses      []string
	OwnerID       uint
	OwnerStatuses []string
	SellerID      uint
	CategoryID    uint
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Preload("Moderation").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductForUpdate reads a product under a pessimistic row lock; the lock
// is held until the enclosing transaction commits or rolls back. The sqlite
// dialect used by the test suite has no FOR UPDATE and serializes writers
// anyway, so the clause is only added on postgres.
func (r *GormRepo) GetProductForUpdate(ctx context.Context, id uint) (*models.Product, error) {
	q := r.DB.WithContext(ctx)
	if q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	product := models.Product{}
	if err := q.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ListProducts(ctx context.Context, q ProductQuery, offset, limit int) (int64, []models.Product, error) {
	base := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Joins("JOIN moderation_entries ON moderation_entries.product_id = products.id")

	if q.CategoryID > 0 {
		base = base.Where("products.category_id = ?", q.CategoryID)
	}
	if q.SellerID > 0 {
		base = base.Where("products.seller_id = ?", q.SellerID)
	}

	switch {
	case q.OwnerID > 0 && len(q.Statuses) > 0:
		base = base.Where(
			r.DB.Where("moderation_entries.status IN ?", q.Statuses).
				Or("products.seller_id = ? AND moderation_entries.status IN ?", q.OwnerID, q.OwnerStatuses),
		)
	case q.OwnerID > 0:
		base = base.Where("products.seller_id = ? AND moderation_entries.status IN ?", q.OwnerID, q.OwnerStatuses)
	case len(q.Statuses) > 0:
		base = base.Where("moderation_entries.status IN ?", q.Statuses)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := base.
		Preload("Moderation").
		Order("products.id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Save(prod).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Select(clause.Associations).Delete(&models.Product{ID: id})
	if res.Error != nil {
		return res.Error
	}
	return r.DB.WithContext(ctx).Where("product_id = ?", id).Delete(&models.ModerationEntry{}).Error
}

// DecrementStock assumes the caller already validated availability under lock.
func (r *GormRepo) DecrementStock(ctx context.Context, productID, quantity uint) error {
	return r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity)).Error
}
