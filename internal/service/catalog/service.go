package catalog

import (
	"context"
	"strings"

	"russo-backend/internal/domain"
	productrepo "russo-backend/internal/repository/product"
	"github.com/shopspring/decimal"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service exposes catalog reads and admin catalog writes.
type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// ListInput mirrors the /products query parameters.
type ListInput struct {
	Category string
	Gender   string
	MinPrice string
	MaxPrice string
	Query    string
	Sort     string
	Page     int
	Limit    int
}

// ListResult is one page of the catalog plus paging metadata computed from
// the filtered total.
type ListResult struct {
	Products   []domain.Product `json:"products"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

func (s *Service) List(ctx context.Context, in ListInput) (*ListResult, error) {
	filter := productrepo.ListFilter{
		Category: strings.TrimSpace(in.Category),
		Gender:   strings.TrimSpace(in.Gender),
		Query:    strings.TrimSpace(in.Query),
		Sort:     normalizeSort(in.Sort),
	}

	var err error
	if filter.MinPrice, err = parsePrice(in.MinPrice, "minPrice"); err != nil {
		return nil, err
	}
	if filter.MaxPrice, err = parsePrice(in.MaxPrice, "maxPrice"); err != nil {
		return nil, err
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, domain.Validationf("minPrice must not exceed maxPrice")
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	filter.Limit = limit
	filter.Offset = (page - 1) * limit

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return &ListResult{
		Products:   products,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Search is case-insensitive substring matching across name, description,
// and category.
func (s *Service) Search(ctx context.Context, query string, page, limit int) (*ListResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.Validationf("search query required")
	}
	return s.List(ctx, ListInput{Query: query, Page: page, Limit: limit})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateInput captures the admin product-creation payload.
type CreateInput struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       string            `json:"price"`
	Category    string            `json:"category"`
	Subcategory string            `json:"subcategory"`
	Gender      string            `json:"gender"`
	Images      []string          `json:"images"`
	Specs       map[string]string `json:"specs"`
	Stock       int               `json:"stock"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validationf("name required")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil || price.IsNegative() {
		return nil, domain.Validationf("price must be a non-negative decimal")
	}
	if in.Stock < 0 {
		return nil, domain.Validationf("stock must not be negative")
	}
	return s.repo.Create(ctx, domain.Product{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       price,
		Category:    strings.TrimSpace(in.Category),
		Subcategory: strings.TrimSpace(in.Subcategory),
		Gender:      strings.TrimSpace(in.Gender),
		Images:      in.Images,
		Specs:       in.Specs,
		Stock:       in.Stock,
	})
}

// AttachModel stores the 3D model reference on a product.
func (s *Service) AttachModel(ctx context.Context, productID, modelURL string) error {
	if strings.TrimSpace(modelURL) == "" {
		return domain.Validationf("model url required")
	}
	return s.repo.SetModelURL(ctx, productID, strings.TrimSpace(modelURL))
}

func (s *Service) Categories(ctx context.Context) ([]domain.CategorySummary, error) {
	return s.repo.Categories(ctx)
}

func normalizeSort(sort string) string {
	switch strings.ToLower(strings.TrimSpace(sort)) {
	case productrepo.SortPriceAsc:
		return productrepo.SortPriceAsc
	case productrepo.SortPriceDesc:
		return productrepo.SortPriceDesc
	case productrepo.SortPopularity:
		return productrepo.SortPopularity
	default:
		return productrepo.SortNewest
	}
}

func parsePrice(raw, field string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, domain.Validationf("%s must be a decimal", field)
	}
	return &d, nil
}
