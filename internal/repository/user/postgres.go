package user

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"russo-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id::text, country_code, phone, password_hash, first_name, last_name, role, verified,
       COALESCE(verification_code, ''), verification_expires_at, theme, locale, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	const q = `
INSERT INTO users (country_code, phone, password_hash, first_name, last_name, role, verification_code, verification_expires_at)
VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)
RETURNING ` + userColumns
	role := u.Role
	if role == "" {
		role = domain.RoleCustomer
	}
	return r.scanUser(r.pool.QueryRow(ctx, q,
		u.CountryCode,
		u.Phone,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		role,
		u.VerificationCode,
		u.VerificationExpiresAt,
	))
}

func (r *postgresRepo) GetByPhone(ctx context.Context, countryCode, phone string) (*domain.User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
WHERE country_code = $1 AND phone = $2
LIMIT 1
`
	return r.scanUser(r.pool.QueryRow(ctx, q, countryCode, phone))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1
`
	return r.scanUser(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) SetVerificationCode(ctx context.Context, id, code string, expiresAt time.Time) error {
	const q = `
UPDATE users
SET verification_code = $1, verification_expires_at = $2
WHERE id = $3
`
	cmd, err := r.pool.Exec(ctx, q, code, expiresAt, id)
	if err != nil {
		r.logger.Printf("user repo: set code id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) MarkVerified(ctx context.Context, id string) error {
	const q = `
UPDATE users
SET verified = TRUE, verification_code = NULL, verification_expires_at = NULL
WHERE id = $1
`
	cmd, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		r.logger.Printf("user repo: mark verified id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) UpdatePreferences(ctx context.Context, id, theme, locale string) error {
	const q = `
UPDATE users
SET theme = $1, locale = $2
WHERE id = $3
`
	cmd, err := r.pool.Exec(ctx, q, theme, locale, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.CountryCode,
		&u.Phone,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Role,
		&u.Verified,
		&u.VerificationCode,
		&u.VerificationExpiresAt,
		&u.Theme,
		&u.Locale,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("user repo: scan error=%v", err)
		return nil, err
	}
	return &u, nil
}
