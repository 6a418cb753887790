package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Price       decimal.Decimal   `json:"price"`
	Category    string            `json:"category"`
	Subcategory string            `json:"subcategory,omitempty"`
	Gender      string            `json:"gender,omitempty"`
	Images      []string          `json:"images"`
	ModelURL    string            `json:"modelUrl,omitempty"`
	Specs       map[string]string `json:"specs,omitempty"`
	Stock       int               `json:"stock"`
	Rating      decimal.Decimal   `json:"rating"`
	ReviewCount int               `json:"reviewCount"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// CategorySummary counts products per category/subcategory pair.
type CategorySummary struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Count       int    `json:"count"`
}
