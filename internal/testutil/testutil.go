// Package testutil holds the shared fixtures for the sqlite-backed test
// suites. Every test gets its own in-memory database with the full schema.
package testutil

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shopfusion/backend/internal/config"
	"github.com/shopfusion/backend/internal/models"
)

// NewDB opens a private in-memory database and runs the migrations. The
// uuid in the DSN keeps parallel tests from sharing a connection.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func SeedUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	user := &models.User{Username: username, PasswordHash: "x", Role: role}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

// SeedProduct creates a product together with its moderation entry in the
// given status.
func SeedProduct(t *testing.T, db *gorm.DB, sellerID uint, name string, price float64, stock uint, status string) *models.Product {
	t.Helper()

	product := &models.Product{
		SellerID:      sellerID,
		Name:          name,
		Description:   name,
		Price:         price,
		StockQuantity: stock,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product %s: %v", name, err)
	}
	entry := &models.ModerationEntry{ProductID: product.ID, Status: status}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("seed moderation for %s: %v", name, err)
	}
	product.Moderation = entry
	return product
}

// SeedCartItem puts a product into the customer's cart, creating the cart
// row if needed.
func SeedCartItem(t *testing.T, db *gorm.DB, customerID, productID, quantity uint, unitPrice float64) *models.CartItem {
	t.Helper()

	cart := &models.ShoppingCart{CustomerID: customerID}
	if err := db.Where(&models.ShoppingCart{CustomerID: customerID}).FirstOrCreate(cart).Error; err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed cart item: %v", err)
	}
	return item
}
