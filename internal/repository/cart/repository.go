package cart

import (
	"context"

	"russo-backend/internal/domain"
)

type Repository interface {
	// ListByUser returns the user's lines enriched with live product
	// name, price, first image, and stock.
	ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error)
	// Add upserts a line keyed on (user, product); an existing line has
	// its quantity incremented instead of a second row appearing.
	Add(ctx context.Context, userID, productID string, quantity int) error
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error
	Remove(ctx context.Context, userID, itemID string) error
	// Clear deletes all lines for the user. Clearing an empty cart is not
	// an error.
	Clear(ctx context.Context, userID string) error
}
