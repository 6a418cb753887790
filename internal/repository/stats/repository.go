package stats

import (
	"context"

	"russo-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Dashboard aggregates the admin landing page renders.
type Dashboard struct {
	Users         int              `json:"users"`
	Products      int              `json:"products"`
	Orders        int              `json:"orders"`
	PendingOrders int              `json:"pendingOrders"`
	Revenue       decimal.Decimal  `json:"revenue"`
	LowStock      []domain.Product `json:"lowStock"`
	RecentOrders  []domain.Order   `json:"recentOrders"`
}

type Repository interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}
