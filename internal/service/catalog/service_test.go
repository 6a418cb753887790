package catalog

import (
	"context"
	"testing"

	"russo-backend/internal/domain"
	productrepo "russo-backend/internal/repository/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProductRepo struct {
	products   []domain.Product
	total      int
	listErr    error
	lastFilter productrepo.ListFilter
	listCalls  int
	created    *domain.Product
	createErr  error
	lastCreate domain.Product
	modelErr   error
	lastModel  string
}

func (s *stubProductRepo) List(_ context.Context, f productrepo.ListFilter) ([]domain.Product, int, error) {
	s.lastFilter = f
	s.listCalls++
	return s.products, s.total, s.listErr
}

func (s *stubProductRepo) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (s *stubProductRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.lastCreate = p
	return s.created, s.createErr
}

func (s *stubProductRepo) SetModelURL(_ context.Context, _, modelURL string) error {
	s.lastModel = modelURL
	return s.modelErr
}

func (s *stubProductRepo) Categories(_ context.Context) ([]domain.CategorySummary, error) {
	return nil, nil
}

func TestListPagingDefaults(t *testing.T) {
	repo := &stubProductRepo{total: 45}
	svc := New(repo)

	res, err := svc.List(context.Background(), ListInput{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 20, res.Limit)
	assert.Equal(t, 45, res.Total)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 20, repo.lastFilter.Limit)
	assert.Zero(t, repo.lastFilter.Offset)
	assert.NotNil(t, res.Products)
}

func TestListPagingBounds(t *testing.T) {
	repo := &stubProductRepo{total: 500}
	svc := New(repo)

	res, err := svc.List(context.Background(), ListInput{Page: 3, Limit: 1000})
	require.NoError(t, err)

	// Limit is capped, and the offset is computed from the capped value.
	assert.Equal(t, 100, res.Limit)
	assert.Equal(t, 200, repo.lastFilter.Offset)
	assert.Equal(t, 5, res.TotalPages)

	_, err = svc.List(context.Background(), ListInput{Page: -4, Limit: -1})
	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastFilter.Limit)
	assert.Zero(t, repo.lastFilter.Offset)
}

func TestListTotalPagesRoundsUp(t *testing.T) {
	repo := &stubProductRepo{total: 41}
	svc := New(repo)

	res, err := svc.List(context.Background(), ListInput{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalPages)

	repo.total = 0
	res, err = svc.List(context.Background(), ListInput{Limit: 20})
	require.NoError(t, err)
	assert.Zero(t, res.TotalPages)
}

func TestListSortNormalization(t *testing.T) {
	repo := &stubProductRepo{}
	svc := New(repo)

	cases := map[string]string{
		"":           productrepo.SortNewest,
		"newest":     productrepo.SortNewest,
		"price_asc":  productrepo.SortPriceAsc,
		"PRICE_DESC": productrepo.SortPriceDesc,
		"popularity": productrepo.SortPopularity,
		"garbage":    productrepo.SortNewest,
	}
	for in, want := range cases {
		_, err := svc.List(context.Background(), ListInput{Sort: in})
		require.NoError(t, err)
		assert.Equal(t, want, repo.lastFilter.Sort, "sort %q", in)
	}
}

func TestListPriceFilters(t *testing.T) {
	repo := &stubProductRepo{}
	svc := New(repo)

	_, err := svc.List(context.Background(), ListInput{MinPrice: "10.50", MaxPrice: "99"})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.MinPrice)
	require.NotNil(t, repo.lastFilter.MaxPrice)
	assert.True(t, repo.lastFilter.MinPrice.Equal(decimal.RequireFromString("10.50")))

	var validationErr *domain.ValidationError

	_, err = svc.List(context.Background(), ListInput{MinPrice: "ten"})
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.List(context.Background(), ListInput{MinPrice: "50", MaxPrice: "10"})
	require.ErrorAs(t, err, &validationErr)
}

func TestSearchRequiresQuery(t *testing.T) {
	repo := &stubProductRepo{}
	svc := New(repo)

	var validationErr *domain.ValidationError
	_, err := svc.Search(context.Background(), "   ", 1, 20)
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, repo.listCalls)

	_, err = svc.Search(context.Background(), "tee", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, "tee", repo.lastFilter.Query)
}

func TestCreateValidation(t *testing.T) {
	repo := &stubProductRepo{created: &domain.Product{ID: "p1"}}
	svc := New(repo)

	var validationErr *domain.ValidationError

	_, err := svc.Create(context.Background(), CreateInput{Name: " ", Price: "10"})
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.Create(context.Background(), CreateInput{Name: "Tee", Price: "free"})
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.Create(context.Background(), CreateInput{Name: "Tee", Price: "-1"})
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.Create(context.Background(), CreateInput{Name: "Tee", Price: "10", Stock: -2})
	require.ErrorAs(t, err, &validationErr)

	created, err := svc.Create(context.Background(), CreateInput{Name: "  Tee ", Price: "24.90", Stock: 5})
	require.NoError(t, err)
	assert.Equal(t, "p1", created.ID)
	assert.Equal(t, "Tee", repo.lastCreate.Name)
	assert.True(t, repo.lastCreate.Price.Equal(decimal.RequireFromString("24.90")))
}

func TestAttachModel(t *testing.T) {
	repo := &stubProductRepo{}
	svc := New(repo)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, svc.AttachModel(context.Background(), "p1", "  "), &validationErr)

	require.NoError(t, svc.AttachModel(context.Background(), "p1", " https://cdn.example/tee.glb "))
	assert.Equal(t, "https://cdn.example/tee.glb", repo.lastModel)

	repo.modelErr = domain.ErrNotFound
	require.ErrorIs(t, svc.AttachModel(context.Background(), "missing", "https://cdn.example/x.glb"), domain.ErrNotFound)
}
