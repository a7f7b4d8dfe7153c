package catalog

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
	ErrForbidden  = errors.New("forbidden")  // 403
)

type Service struct {
	Repo *repo.GormRepo
}

func (s *Service) ListProducts(ctx context.Context, role string, requesterID uint, f Filters, offset, limit int) (int64, []models.Product, error) {
	switch f.Status {
	case "", "all", models.ModerationPending, models.ModerationApproved, models.ModerationRejected:
	default:
		return 0, nil, fmt.Errorf("%w: unknown status %q", ErrValidation, f.Status)
	}

	return s.Repo.ListProducts(ctx, Visibility(role, requesterID, f), offset, limit)
}

// GetProduct hides non-approved products from everyone but their seller and
// admins; a hidden product reads as missing, not as forbidden.
func (s *Service) GetProduct(ctx context.Context, role string, requesterID, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	status := models.ModerationPending
	if product.Moderation != nil {
		status = product.Moderation.Status
	}
	if status == models.ModerationApproved || role == models.RoleAdmin || product.SellerID == requesterID {
		return product, nil
	}
	return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
}

type CreateRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	CategoryID  uint    `json:"category_id"`
	Price       float64 `json:"price"`
	Stock       uint    `json:"stock_quantity"`
}

// CreateProduct persists the product together with its pending moderation
// entry; sellers never publish directly.
func (s *Service) CreateProduct(ctx context.Context, sellerID uint, req CreateRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be > 0", ErrValidation)
	}

	product := &models.Product{
		SellerID:      sellerID,
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.Stock,
	}

	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if err := tx.CreateProduct(ctx, product); err != nil {
			return err
		}
		return tx.CreateModeration(ctx, &models.ModerationEntry{
			ProductID: product.ID,
			Status:    models.ModerationPending,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.GetProduct(ctx, product.ID)
}

type UpdateRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	CategoryID    *uint    `json:"category_id"`
	Price         *float64 `json:"price"`
	StockQuantity *uint    `json:"stock_quantity"`
}

func (s *Service) UpdateProduct(ctx context.Context, requester *models.User, id uint, req UpdateRequest) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	if requester.Role != models.RoleAdmin && product.SellerID != requester.ID {
		return nil, fmt.Errorf("%w: not the owner", ErrForbidden)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("%w: price must be > 0", ErrValidation)
		}
		product.Price = *req.Price
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, requester *models.User, id uint) error {
	product, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	if err != nil {
		return err
	}

	if requester.Role != models.RoleAdmin && product.SellerID != requester.ID {
		return fmt.Errorf("%w: not the owner", ErrForbidden)
	}
	return s.Repo.DeleteProduct(ctx, id)
}
