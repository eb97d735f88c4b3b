package rest

import (
	"context"

	"github.com/dejobratic/shoplite/internal/shop/domain"
)

type productPayload struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Description string  `json:"description"`
	Stock       int     `json:"stock"`
}

// ListProducts fetches the catalog. The fallback policy on failure belongs
// to the caller, not this client.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var payload []productPayload
	if err := c.get(ctx, "/products", &payload); err != nil {
		return nil, &domain.ServiceUnavailableError{Op: "list products", Err: err}
	}

	products := make([]domain.Product, 0, len(payload))
	for _, p := range payload {
		products = append(products, domain.Product{
			ID:          p.ID,
			Name:        p.Name,
			PriceCents:  decimalToCents(p.Price),
			ImageURL:    p.ImageURL,
			Description: p.Description,
			Stock:       p.Stock,
		})
	}
	return products, nil
}
