package widget

import (
	"context"
	"errors"

	"russo-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const widgetColumns = `id::text, title, kind, settings, sort_order, enabled, created_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListEnabled(ctx context.Context) ([]domain.Widget, error) {
	const q = `
SELECT ` + widgetColumns + `
FROM widgets
WHERE enabled
ORDER BY sort_order ASC, created_at ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Widget
	for rows.Next() {
		w, err := scanWidget(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *w)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Create(ctx context.Context, w domain.Widget) (*domain.Widget, error) {
	const q = `
INSERT INTO widgets (title, kind, settings, sort_order, enabled)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + widgetColumns
	settings := w.Settings
	if settings == nil {
		settings = map[string]interface{}{}
	}
	return scanWidget(r.pool.QueryRow(ctx, q, w.Title, w.Kind, settings, w.SortOrder, w.Enabled))
}

func (r *postgresRepo) Update(ctx context.Context, w domain.Widget) (*domain.Widget, error) {
	const q = `
UPDATE widgets
SET title = $1, kind = $2, settings = $3, sort_order = $4, enabled = $5
WHERE id = $6
RETURNING ` + widgetColumns
	settings := w.Settings
	if settings == nil {
		settings = map[string]interface{}{}
	}
	out, err := scanWidget(r.pool.QueryRow(ctx, q, w.Title, w.Kind, settings, w.SortOrder, w.Enabled, w.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM widgets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanWidget(row pgx.Row) (*domain.Widget, error) {
	var w domain.Widget
	if err := row.Scan(
		&w.ID,
		&w.Title,
		&w.Kind,
		&w.Settings,
		&w.SortOrder,
		&w.Enabled,
		&w.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &w, nil
}
