package order

import (
	"context"

	"russo-backend/internal/domain"
)

// PlaceOrderInput carries everything checkout needs besides the cart itself,
// which is read inside the transaction.
type PlaceOrderInput struct {
	UserID          string
	OrderNumber     string
	ShippingAddress string
	PaymentMethod   string
}

type Repository interface {
	// PlaceOrder converts the user's cart into an order inside a single
	// transaction: stock check, order + item snapshot insert, conditional
	// stock decrements, cart clear. Any failure rolls the whole sequence
	// back.
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	// GetByID is scoped to the owning user.
	GetByID(ctx context.Context, userID, orderID string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
}
