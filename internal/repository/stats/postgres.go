package stats

import (
	"context"
	"fmt"

	"russo-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Products with fewer units than this show up on the dashboard.
const lowStockThreshold = 5

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	var revenue string

	const countsQuery = `
SELECT
    (SELECT COUNT(*) FROM users),
    (SELECT COUNT(*) FROM products),
    (SELECT COUNT(*) FROM orders),
    (SELECT COUNT(*) FROM orders WHERE status = 'pending'),
    (SELECT COALESCE(SUM(total), 0)::text FROM orders WHERE status <> 'cancelled')
`
	if err := r.pool.QueryRow(ctx, countsQuery).Scan(&d.Users, &d.Products, &d.Orders, &d.PendingOrders, &revenue); err != nil {
		return nil, err
	}
	var err error
	if d.Revenue, err = decimal.NewFromString(revenue); err != nil {
		return nil, fmt.Errorf("parse revenue %q: %w", revenue, err)
	}

	if d.LowStock, err = r.lowStock(ctx); err != nil {
		return nil, err
	}
	if d.RecentOrders, err = r.recentOrders(ctx); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *postgresRepo) lowStock(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT id::text, name, category, stock
FROM products
WHERE stock < $1
ORDER BY stock ASC, name ASC
LIMIT 20
`
	rows, err := r.pool.Query(ctx, q, lowStockThreshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Stock); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *postgresRepo) recentOrders(ctx context.Context) ([]domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, order_number, total::text, status, created_at
FROM orders
ORDER BY created_at DESC
LIMIT 10
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		var total string
		if err := rows.Scan(&o.ID, &o.UserID, &o.OrderNumber, &total, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		parsed, err := decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("parse total %q: %w", total, err)
		}
		o.Total = parsed
		result = append(result, o)
	}
	return result, rows.Err()
}
