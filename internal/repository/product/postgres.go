package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"russo-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const productColumns = `id::text, name, COALESCE(description, ''), price::text, category, subcategory, gender,
       images, model_url, specs, stock, rating::text, review_count, created_at`

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

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]domain.Product, int, error) {
	where, args := buildWhere(f)

	// The count runs under the same WHERE as the page so the two never
	// disagree.
	countQuery := "SELECT COUNT(*) FROM products" + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Printf("product repo: count error=%v", err)
		return nil, 0, err
	}

	pageQuery := fmt.Sprintf(
		"SELECT %s FROM products%s ORDER BY %s LIMIT $%d OFFSET $%d",
		productColumns, where, orderClause(f.Sort), len(args)+1, len(args)+2,
	)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.pool.Query(ctx, pageQuery, args...)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, 0, err
	}
	return result, total, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, description, price, category, subcategory, gender, images, model_url, specs, stock, rating, review_count)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + productColumns
	images := p.Images
	if images == nil {
		images = []string{}
	}
	specs := p.Specs
	if specs == nil {
		specs = map[string]string{}
	}
	created, err := scanProduct(r.pool.QueryRow(ctx, q,
		p.Name,
		p.Description,
		p.Price.String(),
		p.Category,
		p.Subcategory,
		p.Gender,
		images,
		p.ModelURL,
		specs,
		p.Stock,
		p.Rating.String(),
		p.ReviewCount,
	))
	if err != nil {
		r.logger.Printf("product repo: create name=%q error=%v", p.Name, err)
		return nil, err
	}
	r.logger.Printf("product repo: created id=%s name=%q", created.ID, created.Name)
	return created, nil
}

func (r *postgresRepo) SetModelURL(ctx context.Context, id, modelURL string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE products SET model_url = $1 WHERE id = $2`, modelURL, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Categories(ctx context.Context) ([]domain.CategorySummary, error) {
	const q = `
SELECT category, subcategory, COUNT(*)
FROM products
WHERE category <> ''
GROUP BY category, subcategory
ORDER BY category, subcategory
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CategorySummary
	for rows.Next() {
		var c domain.CategorySummary
		if err := rows.Scan(&c.Category, &c.Subcategory, &c.Count); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// likeEscaper neutralizes ILIKE metacharacters in user-supplied search text
// so they match literally instead of acting as wildcards.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildWhere renders the conjunctive filter set as a WHERE clause with
// positional args.
func buildWhere(f ListFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.Gender != "" {
		add("gender = $%d", f.Gender)
	}
	if f.MinPrice != nil {
		add("price >= $%d", f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		add("price <= $%d", f.MaxPrice.String())
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		pattern := "%" + likeEscaper.Replace(q) + "%"
		args = append(args, pattern)
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d OR category ILIKE $%d)", n, n, n))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func orderClause(sort string) string {
	switch sort {
	case SortPriceAsc:
		return "price ASC, created_at DESC"
	case SortPriceDesc:
		return "price DESC, created_at DESC"
	case SortPopularity:
		return "rating DESC, review_count DESC"
	default:
		return "created_at DESC"
	}
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var price, rating string
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&price,
		&p.Category,
		&p.Subcategory,
		&p.Gender,
		&p.Images,
		&p.ModelURL,
		&p.Specs,
		&p.Stock,
		&rating,
		&p.ReviewCount,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	var err error
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("parse price %q: %w", price, err)
	}
	if p.Rating, err = decimal.NewFromString(rating); err != nil {
		return nil, fmt.Errorf("parse rating %q: %w", rating, err)
	}
	return &p, nil
}
