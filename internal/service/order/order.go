package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shopfusion/backend/internal/logging"
	"github.com/shopfusion/backend/internal/models"
	"github.com/shopfusion/backend/internal/repo"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")        // 400
	ErrProductNotFound   = errors.New("product not found")    // 404
	ErrInsufficientStock = errors.New("insufficient stock")   // 409
	ErrNotFound          = errors.New("order not found")      // 404
)

type Service struct {
	Repo *repo.GormRepo
}

// Checkout places an order from the customer's cart. Everything from stock
// validation to cart clearing happens in one transaction: either the whole
// order commits or nothing changes.
//
// Unit prices are snapshotted from the live product rows at checkout time,
// not from the cart's stored unit_price. Price drift between add-to-cart and
// checkout is intentional and must stay that way.
func (s *Service) Checkout(ctx context.Context, customerID uint) (*models.Order, error) {
	cart, err := s.Repo.GetOrCreateCart(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var placed *models.Order
	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		products, err := validateStock(ctx, tx, cart.Items)
		if err != nil {
			return err
		}

		lines := make([]models.OrderItem, len(cart.Items))
		for i, it := range cart.Items {
			lines[i] = models.OrderItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: products[i].Price,
			}
		}

		order := &models.Order{
			CustomerID:  customerID,
			Status:      models.OrderStatusPendingPayment,
			TotalAmount: ItemsTotal(lines),
			OrderDate:   time.Now(),
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		for i := range lines {
			lines[i].OrderID = order.ID
		}
		if err := tx.CreateOrderItems(ctx, lines); err != nil {
			return err
		}

		for _, it := range cart.Items {
			if err := tx.DecrementStock(ctx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}

		if err := tx.ClearCart(ctx, cart.ID); err != nil {
			return err
		}

		placed, err = tx.GetOrderWithItems(ctx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// validateStock reads every requested product under a row lock and confirms
// availability. It only reads and fails; the caller decrements after the
// order rows exist. Locks are held until the enclosing transaction finishes,
// so two concurrent checkouts cannot both pass for the same unit of stock.
func validateStock(ctx context.Context, tx *repo.GormRepo, items []models.CartItem) ([]models.Product, error) {
	products := make([]models.Product, 0, len(items))
	for _, it := range items {
		p, err := tx.GetProductForUpdate(ctx, it.ProductID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, it.ProductID)
		}
		if err != nil {
			return nil, err
		}
		if p.StockQuantity < it.Quantity {
			return nil, fmt.Errorf("%w for %s. Only %d available", ErrInsufficientStock, p.Name, p.StockQuantity)
		}
		products = append(products, *p)
	}
	return products, nil
}

func (s *Service) ListOrders(ctx context.Context, customerID uint, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListOrders(ctx, customerID, offset, limit)
}

func (s *Service) GetOrder(ctx context.Context, customerID, id uint) (*models.Order, error) {
	o, err := s.Repo.GetCustomerOrder(ctx, id, customerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if !VerifyTotal(o) {
		logging.FromContext(ctx).Warn("stored order total disagrees with its line items",
			"orderID", o.ID, "total", o.TotalAmount, "computed", ItemsTotal(o.Items))
	}
	return o, nil
}
