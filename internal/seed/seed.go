package seed

import (
	"context"
	"fmt"

	"russo-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	Name        string
	Description string
	Price       string
	Category    string
	Subcategory string
	Gender      string
	Stock       int
}

// Apply inserts basic seed data for manual testing. It is idempotent.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureAdmin(ctx, pool, "+1", "5550100", "ChangeMe123"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	products := []productSeed{
		{
			Name:        "Club Crew Tee",
			Description: "Heavyweight cotton tee with embroidered crest",
			Price:       "24.90",
			Category:    "clothing",
			Subcategory: "t-shirts",
			Gender:      "unisex",
			Stock:       40,
		},
		{
			Name:        "Runner Low Sneaker",
			Description: "Lightweight everyday trainer",
			Price:       "89.00",
			Category:    "shoes",
			Subcategory: "sneakers",
			Gender:      "men",
			Stock:       12,
		},
		{
			Name:        "Canvas Tote",
			Description: "Reinforced canvas tote bag",
			Price:       "19.50",
			Category:    "accessories",
			Subcategory: "bags",
			Gender:      "women",
			Stock:       25,
		},
	}

	for _, p := range products {
		if err := insertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("insert product %s: %w", p.Name, err)
		}
	}

	if err := insertWidget(ctx, pool, "New arrivals", "product_rail", 0); err != nil {
		return fmt.Errorf("insert widget: %w", err)
	}

	return nil
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, countryCode, phone, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (country_code, phone, password_hash, first_name, role, verified)
VALUES ($1, $2, $3, 'Admin', $4, TRUE)
ON CONFLICT (country_code, phone) DO UPDATE
SET role = EXCLUDED.role,
    verified = TRUE
`
	_, err = pool.Exec(ctx, q, countryCode, phone, string(hashed), domain.RoleAdmin)
	return err
}

func insertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, description, price, category, subcategory, gender, stock)
SELECT $1, $2, $3::numeric, $4, $5, $6, $7
WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)
`
	_, err := pool.Exec(ctx, q, p.Name, p.Description, p.Price, p.Category, p.Subcategory, p.Gender, p.Stock)
	return err
}

func insertWidget(ctx context.Context, pool *pgxpool.Pool, title, kind string, sortOrder int) error {
	const q = `
INSERT INTO widgets (title, kind, sort_order)
SELECT $1, $2, $3
WHERE NOT EXISTS (SELECT 1 FROM widgets WHERE title = $1)
`
	_, err := pool.Exec(ctx, q, title, kind, sortOrder)
	return err
}
