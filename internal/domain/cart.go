package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one (user, product, quantity) record. At most one active line
// exists per user/product pair; re-adding increments the quantity.
type CartItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`

	// Live product fields joined in on reads.
	ProductName string          `json:"productName,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Image       string          `json:"image,omitempty"`
	Stock       int             `json:"stock"`
}

// Subtotal is the line total at the current product price.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the enriched read model returned to clients.
type Cart struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}
