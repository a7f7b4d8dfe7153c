package cart

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shopfusion/backend/internal/models"
	"github.com/shopfusion/backend/internal/repo"
)

var (
	ErrNotFound = errors.New("not found") // 404
)

type Service struct {
	Repo *repo.GormRepo
}

func (s *Service) GetCart(ctx context.Context, customerID uint) (*models.ShoppingCart, error) {
	return s.Repo.GetOrCreateCart(ctx, customerID)
}

// AddItem adds an approved product to the cart, snapshotting its current
// price as the item's unit_price. Adding an existing product bumps the
// quantity and keeps the original snapshot.
func (s *Service) AddItem(ctx context.Context, customerID, productID, quantity uint) (*models.CartItem, error) {
	if quantity < 1 {
		quantity = 1
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

	cart, err := s.Repo.GetOrCreateCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	item, err := s.Repo.FindCartItem(ctx, cart.ID, productID)
	if err == nil {
		item.Quantity += quantity
		if err := s.Repo.SaveCartItem(ctx, item); err != nil {
			return nil, err
		}
		return item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	newItem := &models.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: product.Price,
	}
	if err := s.Repo.CreateCartItem(ctx, newItem); err != nil {
		return nil, err
	}
	return newItem, nil
}

// UpdateItem sets the quantity; anything below 1 deletes the item, in which
// case the returned item is nil.
func (s *Service) UpdateItem(ctx context.Context, customerID, itemID uint, quantity int) (*models.CartItem, error) {
	cart, err := s.Repo.GetOrCreateCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	item, err := s.Repo.GetCartItem(ctx, cart.ID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
	}
	if err != nil {
		return nil, err
	}

	if quantity < 1 {
		if err := s.Repo.DeleteCartItem(ctx, item.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	item.Quantity = uint(quantity)
	if err := s.Repo.SaveCartItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) RemoveItem(ctx context.Context, customerID, itemID uint) error {
	cart, err := s.Repo.GetOrCreateCart(ctx, customerID)
	if err != nil {
		return err
	}

	item, err := s.Repo.GetCartItem(ctx, cart.ID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
	}
	if err != nil {
		return err
	}
	return s.Repo.DeleteCartItem(ctx, item.ID)
}
