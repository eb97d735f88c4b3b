package queries

import (
	"context"
	"log/slog"

	"github.com/dejobratic/shoplite/internal/shop/domain"
	"github.com/dejobratic/shoplite/internal/shop/ports"
)

// fallbackCatalog is served when the catalog service is unreachable, so the
// storefront never shows an empty catalog. All entries carry zero stock.
var fallbackCatalog = []domain.Product{
	{ID: "fallback-1", Name: "Classic Kettle", PriceCents: 2999, Description: "Temporarily unavailable", Stock: 0},
	{ID: "fallback-2", Name: "Ceramic Mug Set", PriceCents: 1499, Description: "Temporarily unavailable", Stock: 0},
	{ID: "fallback-3", Name: "Pour-Over Stand", PriceCents: 4599, Description: "Temporarily unavailable", Stock: 0},
}

// GetCatalogQueryHandler fetches the product catalog, substituting a fixed
// placeholder catalog on any failure.
type GetCatalogQueryHandler struct {
	catalog ports.CatalogService
	logger  *slog.Logger
}

func NewGetCatalogQueryHandler(catalog ports.CatalogService, logger *slog.Logger) *GetCatalogQueryHandler {
	return &GetCatalogQueryHandler{catalog: catalog, logger: logger}
}

// Handle returns the live catalog, or the placeholder catalog when the fetch
// fails. It never returns an error to the caller.
func (h *GetCatalogQueryHandler) Handle(ctx context.Context) []domain.Product {
	products, err := h.catalog.ListProducts(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "catalog fetch failed, serving fallback catalog",
			"error", err,
		)
		return Fallback()
	}
	return products
}

// Fallback returns a copy of the placeholder catalog.
func Fallback() []domain.Product {
	out := make([]domain.Product, len(fallbackCatalog))
	copy(out, fallbackCatalog)
	return out
}
