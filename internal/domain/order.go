package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses observed by clients. Transitions are admin-driven and not
// constrained to a state graph; any non-empty status is accepted.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Order is an immutable record of a completed checkout. Total and items are
// frozen at creation from the price snapshot taken inside the checkout
// transaction.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"-"`
	OrderNumber     string          `json:"orderNumber"`
	Total           decimal.Decimal `json:"total"`
	Status          string          `json:"status"`
	ShippingAddress string          `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   string          `json:"paymentStatus"`
	TrackingNumber  string          `json:"trackingNumber,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	Items           []OrderItem     `json:"items,omitempty"`
}

// OrderItem snapshots one purchased line: product reference, quantity, and
// the unit price at the moment of purchase.
type OrderItem struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"-"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
}
