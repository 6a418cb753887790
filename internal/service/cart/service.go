package cart

import (
	"context"

	"russo-backend/internal/domain"
	"github.com/shopspring/decimal"
)

type Service struct {
	repo     cartRepo
	products productRepo
}

type cartRepo interface {
	ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error)
	Add(ctx context.Context, userID, productID string, quantity int) error
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error
	Remove(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartRepo, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

// Get returns the enriched cart with per-line subtotals and the cart total.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return &domain.Cart{Items: items, Total: total}, nil
}

// AddItem upserts a line for (user, product). No stock check happens here:
// over-committing a cart is allowed and resolved at checkout.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) error {
	if productID == "" {
		return domain.Validationf("product_id required")
	}
	if quantity < 1 {
		return domain.Validationf("quantity must be at least 1")
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return err
	}
	return s.repo.Add(ctx, userID, productID, quantity)
}

func (s *Service) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	if quantity < 1 {
		return domain.Validationf("quantity must be at least 1")
	}
	return s.repo.UpdateQuantity(ctx, userID, itemID, quantity)
}

func (s *Service) RemoveItem(ctx context.Context, userID, itemID string) error {
	return s.repo.Remove(ctx, userID, itemID)
}

// Clear is idempotent; clearing an already-empty cart succeeds.
func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.repo.Clear(ctx, userID)
}
