package models

import (
	"time"
)

const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
	RoleAdmin    = "admin"
)

const (
	ModerationPending  = "pending"
	ModerationApproved = "approved"
	ModerationRejected = "rejected"
)

const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusProcessing     = "processing"
	OrderStatusShipped        = "shipped"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

const (
	DisputeOpen        = "open"
	DisputeUnderReview = "under_review"
	DisputeResolved    = "resolved"
	DisputeRejected    = "rejected"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

// Product carries no status column of its own: the moderation entry is the
// single source of truth for visibility.
type Product struct {
	ID            uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID      uint             `gorm:"index;not null"           json:"seller_id"`
	CategoryID    uint             `gorm:"index"                    json:"category_id"`
	Name          string           `gorm:"not null"                 json:"name"`
	Description   string           `gorm:"not null"                 json:"description"`
	Price         float64          `gorm:"not null;check:price > 0" json:"price"`
	StockQuantity uint             `json:"stock_quantity"`
	Moderation    *ModerationEntry `gorm:"foreignKey:ProductID"     json:"moderation,omitempty"`
}

// ModerationEntry: one row per product, updated in place on re-review.
// Feedback is mandatory iff status is rejected.
type ModerationEntry struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID  uint       `gorm:"uniqueIndex;not null"     json:"product_id"`
	Status     string     `gorm:"not null;default:pending" json:"status"`
	Feedback   string     `json:"feedback"`
	AdminID    *uint      `json:"admin_id,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}

type ShoppingCart struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID uint       `gorm:"uniqueIndex;not null"     json:"customer_id"`
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
}

// CartItem keeps the price seen at add-to-cart time. Checkout deliberately
// ignores it and re-reads the live product price.
type CartItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"     json:"id"`
	CartID    uint    `gorm:"index;not null"               json:"cart_id"`
	ProductID uint    `gorm:"not null"                     json:"product_id"`
	Quantity  uint    `gorm:"not null;check:quantity >= 1" json:"quantity"`
	UnitPrice float64 `gorm:"not null"                     json:"unit_price"`
}

type Order struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID  uint        `gorm:"index;not null"           json:"customer_id"`
	Status      string      `gorm:"not null"                 json:"status"`
	TotalAmount float64     `gorm:"not null"                 json:"total_amount"`
	OrderDate   time.Time   `gorm:"not null"                 json:"order_date"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem freezes quantity and unit price at order time so historical
// orders are immune to later price changes.
type OrderItem struct {
	ID        uint     `gorm:"primaryKey;autoIncrement"     json:"id"`
	OrderID   uint     `gorm:"index;not null"               json:"order_id"`
	ProductID uint     `gorm:"not null"                     json:"product_id"`
	Quantity  uint     `gorm:"not null;check:quantity >= 1" json:"quantity"`
	UnitPrice float64  `gorm:"not null"                     json:"unit_price"`
	Product   *Product `gorm:"foreignKey:ProductID"         json:"product,omitempty"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                   json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_review_prod_user"  json:"product_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_prod_user"  json:"user_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type Dispute struct {
	ID                uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID           uint       `gorm:"index;not null"           json:"order_id"`
	RaisedByUserID    uint       `gorm:"not null"                 json:"raised_by_user_id"`
	Status            string     `gorm:"not null;default:open"    json:"status"`
	Reason            string     `json:"reason"`
	ResolutionDetails string     `json:"resolution_details"`
	ResolvedByUserID  *uint      `json:"resolved_by_user_id,omitempty"`
	ResolvedAt        *time.Time `json:"resolved_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type Setting struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Key   string `gorm:"uniqueIndex;not null"     json:"key"`
	Value string `gorm:"not null"                 json:"value"`
}
