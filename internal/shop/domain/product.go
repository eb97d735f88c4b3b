package domain

import (
	"errors"
	"strings"
)

// Product describes a catalog entry. Products are immutable on the client
// side; the authoritative stock count lives on the catalog service and the
// local value is display-only.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PriceCents  int64  `json:"price_cents"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
	Stock       int    `json:"stock"`
}

// Validate ensures the product adheres to catalog constraints.
func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("product id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("product name is required")
	}
	if p.PriceCents < 0 {
		return errors.New("product price must not be negative")
	}
	if p.Stock < 0 {
		return errors.New("product stock must not be negative")
	}
	return nil
}
