package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"russo-backend/internal/domain"
	orderrepo "russo-backend/internal/repository/order"
	"github.com/google/uuid"
)

// Service is the checkout engine plus order reads and the admin status
// update.
type Service struct {
	repo repo
	now  func() time.Time
}

type repo interface {
	PlaceOrder(ctx context.Context, in orderrepo.PlaceOrderInput) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetByID(ctx context.Context, userID, orderID string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// PlaceOrder converts the user's cart into an order. Validation failures are
// side-effect free; everything past them runs inside a single transaction in
// the repository, so a failure there leaves cart, stock, and orders
// untouched.
func (s *Service) PlaceOrder(ctx context.Context, userID, shippingAddress, paymentMethod string) (*domain.Order, error) {
	shippingAddress = strings.TrimSpace(shippingAddress)
	if shippingAddress == "" {
		return nil, domain.Validationf("shipping_address required")
	}
	paymentMethod = strings.TrimSpace(paymentMethod)
	if paymentMethod == "" {
		return nil, domain.Validationf("payment_method required")
	}

	return s.repo.PlaceOrder(ctx, orderrepo.PlaceOrderInput{
		UserID:          userID,
		OrderNumber:     s.orderNumber(),
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
	})
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (s *Service) Get(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, userID, orderID)
}

// UpdateStatus accepts any non-empty status string; transitions are
// admin-driven and not constrained to a state graph.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) error {
	if strings.TrimSpace(status) == "" {
		return domain.Validationf("status required")
	}
	return s.repo.UpdateStatus(ctx, orderID, strings.TrimSpace(status))
}

// orderNumber builds a human-readable order number. The timestamp and UUID
// fragment keep it readable and practically unique; the real guarantee is
// the unique index on orders.order_number.
func (s *Service) orderNumber() string {
	frag := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("RUS-%d-%s", s.now().UnixMilli(), frag)
}
