package domain

import "time"

// Widget is an admin-managed home screen content block rendered by the
// mobile client (banner, carousel, product rail).
type Widget struct {
	ID        string                 `json:"id"`
	Title     string                 `json:"title"`
	Kind      string                 `json:"kind"`
	Settings  map[string]interface{} `json:"settings,omitempty"`
	SortOrder int                    `json:"sortOrder"`
	Enabled   bool                   `json:"enabled"`
	CreatedAt time.Time              `json:"createdAt"`
}
