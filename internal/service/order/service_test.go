package order

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"russo-backend/internal/domain"
	orderrepo "russo-backend/internal/repository/order"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	placed       *domain.Order
	placeErr     error
	lastPlace    orderrepo.PlaceOrderInput
	placeCalls   int
	orders       []domain.Order
	listErr      error
	getOrder     *domain.Order
	getErr       error
	statusErr    error
	lastOrderID  string
	lastStatus   string
	statusCalled bool
}

func (s *stubRepo) PlaceOrder(_ context.Context, in orderrepo.PlaceOrderInput) (*domain.Order, error) {
	s.lastPlace = in
	s.placeCalls++
	return s.placed, s.placeErr
}

func (s *stubRepo) ListByUser(_ context.Context, _ string) ([]domain.Order, error) {
	return s.orders, s.listErr
}

func (s *stubRepo) GetByID(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.getOrder, s.getErr
}

func (s *stubRepo) UpdateStatus(_ context.Context, orderID, status string) error {
	s.statusCalled = true
	s.lastOrderID = orderID
	s.lastStatus = status
	return s.statusErr
}

func TestPlaceOrderValidation(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	var validationErr *domain.ValidationError

	_, err := svc.PlaceOrder(context.Background(), "u1", "  ", "card")
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.PlaceOrder(context.Background(), "u1", "1 Main St", "")
	require.ErrorAs(t, err, &validationErr)

	// Validation failures must be side-effect free.
	assert.Zero(t, repo.placeCalls)
}

func TestPlaceOrderHappyPath(t *testing.T) {
	placed := &domain.Order{
		ID:          "o1",
		OrderNumber: "RUS-1-ABCDEF01",
		Total:       decimal.RequireFromString("20.00"),
		Status:      domain.OrderStatusPending,
	}
	repo := &stubRepo{placed: placed}
	svc := New(repo)

	got, err := svc.PlaceOrder(context.Background(), "u1", "  1 Main St  ", " card ")
	require.NoError(t, err)
	assert.Equal(t, placed, got)

	assert.Equal(t, "u1", repo.lastPlace.UserID)
	assert.Equal(t, "1 Main St", repo.lastPlace.ShippingAddress)
	assert.Equal(t, "card", repo.lastPlace.PaymentMethod)
	assert.Regexp(t, regexp.MustCompile(`^RUS-\d+-[0-9A-F]{8}$`), repo.lastPlace.OrderNumber)
}

func TestPlaceOrderPropagatesDomainErrors(t *testing.T) {
	stockErr := &domain.InsufficientStockError{
		ProductID:   "p1",
		ProductName: "Club Crew Tee",
		Requested:   3,
		Available:   1,
	}

	cases := []struct {
		name string
		err  error
	}{
		{"empty cart", domain.ErrEmptyCart},
		{"insufficient stock", stockErr},
		{"storage failure", errors.New("tx aborted")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := New(&stubRepo{placeErr: tc.err})
			_, err := svc.PlaceOrder(context.Background(), "u1", "1 Main St", "card")
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestOrderNumberEmbedsTimestamp(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	svc := &Service{repo: &stubRepo{}, now: func() time.Time { return fixed }}

	n := svc.orderNumber()
	assert.Regexp(t, regexp.MustCompile(`^RUS-1700000000000-[0-9A-F]{8}$`), n)

	// Two numbers from the same instant still differ via the random
	// fragment.
	assert.NotEqual(t, n, svc.orderNumber())
}

func TestListReturnsEmptySliceNotNil(t *testing.T) {
	svc := New(&stubRepo{orders: nil})
	orders, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestUpdateStatus(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	var validationErr *domain.ValidationError
	err := svc.UpdateStatus(context.Background(), "o1", "   ")
	require.ErrorAs(t, err, &validationErr)
	assert.False(t, repo.statusCalled)

	// Any non-empty status is accepted; transitions are not constrained.
	require.NoError(t, svc.UpdateStatus(context.Background(), "o1", " shipped "))
	assert.Equal(t, "o1", repo.lastOrderID)
	assert.Equal(t, "shipped", repo.lastStatus)

	repo.statusErr = domain.ErrNotFound
	require.ErrorIs(t, svc.UpdateStatus(context.Background(), "missing", "shipped"), domain.ErrNotFound)
}
