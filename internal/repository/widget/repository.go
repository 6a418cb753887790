package widget

import (
	"context"

	"russo-backend/internal/domain"
)

type Repository interface {
	// ListEnabled returns the widgets the mobile home screen renders, in
	// sort order.
	ListEnabled(ctx context.Context) ([]domain.Widget, error)
	Create(ctx context.Context, w domain.Widget) (*domain.Widget, error)
	Update(ctx context.Context, w domain.Widget) (*domain.Widget, error)
	Delete(ctx context.Context, id string) error
}
