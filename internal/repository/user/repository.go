package user

import (
	"context"
	"time"

	"russo-backend/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByPhone(ctx context.Context, countryCode, phone string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// SetVerificationCode stores a fresh one-time code and its expiry.
	SetVerificationCode(ctx context.Context, id, code string, expiresAt time.Time) error
	// MarkVerified flips the verified flag and clears the one-time code.
	MarkVerified(ctx context.Context, id string) error
	UpdatePreferences(ctx context.Context, id, theme, locale string) error
}
