package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"russo-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const orderColumns = `id::text, user_id::text, order_number, total::text, status, shipping_address,
       payment_method, payment_status, tracking_number, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

type checkoutLine struct {
	productID string
	name      string
	unitPrice decimal.Decimal
	quantity  int
	stock     int
}

func (r *postgresRepo) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	lines, err := loadCartLines(ctx, tx, in.UserID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	// All-or-nothing stock verification before any write. The conditional
	// updates below take the row lock and re-evaluate against committed
	// stock, so a concurrent checkout of the same product cannot slip past
	// both.
	total := decimal.Zero
	for _, line := range lines {
		if line.quantity > line.stock {
			return nil, &domain.InsufficientStockError{
				ProductID:   line.productID,
				ProductName: line.name,
				Requested:   line.quantity,
				Available:   line.stock,
			}
		}
		total = total.Add(line.unitPrice.Mul(decimal.NewFromInt(int64(line.quantity))))
	}

	var order domain.Order
	if err := scanOrder(tx.QueryRow(ctx, `
INSERT INTO orders (user_id, order_number, total, shipping_address, payment_method)
VALUES ($1, $2, $3, $4, $5)
RETURNING `+orderColumns, in.UserID, in.OrderNumber, total.StringFixed(2), in.ShippingAddress, in.PaymentMethod), &order); err != nil {
		return nil, err
	}

	for _, line := range lines {
		var itemID string
		if err := tx.QueryRow(ctx, `
INSERT INTO order_items (order_id, product_id, product_name, unit_price, quantity)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text
`, order.ID, line.productID, line.name, line.unitPrice.StringFixed(2), line.quantity).Scan(&itemID); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, domain.OrderItem{
			ID:          itemID,
			OrderID:     order.ID,
			ProductID:   line.productID,
			ProductName: line.name,
			UnitPrice:   line.unitPrice,
			Quantity:    line.quantity,
		})

		cmd, err := tx.Exec(ctx, `
UPDATE products
SET stock = stock - $1
WHERE id = $2 AND stock >= $1
`, line.quantity, line.productID)
		if err != nil {
			return nil, err
		}
		if cmd.RowsAffected() == 0 {
			// Lost a race for the last units despite the check above.
			// Report the stock as it stands now, not the stale snapshot
			// read before the race.
			var available int
			if err := tx.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, line.productID).Scan(&available); err != nil {
				return nil, err
			}
			return nil, &domain.InsufficientStockError{
				ProductID:   line.productID,
				ProductName: line.name,
				Requested:   line.quantity,
				Available:   available,
			}
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, in.UserID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	r.logger.Printf("order repo: placed order=%s number=%s user=%s total=%s", order.ID, order.OrderNumber, in.UserID, order.Total.StringFixed(2))
	return &order, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1 AND user_id = $2
`
	var o domain.Order
	if err := scanOrder(r.pool.QueryRow(ctx, q, orderID, userID), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const itemsQuery = `
SELECT id::text, order_id::text, product_id::text, product_name, unit_price::text, quantity
FROM order_items
WHERE order_id = $1
`
	rows, err := r.pool.Query(ctx, itemsQuery, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		var price string
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &price, &item.Quantity); err != nil {
			return nil, err
		}
		if item.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse unit price %q: %w", price, err)
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, orderID, status string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, orderID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// loadCartLines reads the user's cart joined with the current product price
// and stock. The prices read here are the snapshot the order total is frozen
// from.
func loadCartLines(ctx context.Context, tx pgx.Tx, userID string) ([]checkoutLine, error) {
	const q = `
SELECT ci.product_id::text, p.name, p.price::text, ci.quantity, p.stock
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.user_id = $1
ORDER BY ci.created_at ASC
`
	rows, err := tx.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []checkoutLine
	for rows.Next() {
		var line checkoutLine
		var price string
		if err := rows.Scan(&line.productID, &line.name, &price, &line.quantity, &line.stock); err != nil {
			return nil, err
		}
		if line.unitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse price %q: %w", price, err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func scanOrder(row pgx.Row, o *domain.Order) error {
	var total string
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.OrderNumber,
		&total,
		&o.Status,
		&o.ShippingAddress,
		&o.PaymentMethod,
		&o.PaymentStatus,
		&o.TrackingNumber,
		&o.CreatedAt,
	); err != nil {
		return err
	}
	parsed, err := decimal.NewFromString(total)
	if err != nil {
		return fmt.Errorf("parse total %q: %w", total, err)
	}
	o.Total = parsed
	return nil
}
