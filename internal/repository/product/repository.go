package product

import (
	"context"

	"russo-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Sort orders accepted by List. Anything else falls back to SortNewest.
const (
	SortNewest     = "newest"
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortPopularity = "popularity"
)

// ListFilter narrows and pages the catalog. Filters are conjunctive.
type ListFilter struct {
	Category string
	Gender   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Query    string
	Sort     string
	Limit    int
	Offset   int
}

type Repository interface {
	// List returns one page of products plus the total count under the
	// same filter set.
	List(ctx context.Context, f ListFilter) ([]domain.Product, int, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	SetModelURL(ctx context.Context, id, modelURL string) error
	Categories(ctx context.Context) ([]domain.CategorySummary, error)
}
