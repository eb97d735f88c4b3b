package queries_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/dejobratic/shoplite/internal/shop/app/queries"
	"github.com/dejobratic/shoplite/internal/shop/domain"
)

type mockCatalogService struct {
	listFn func(ctx context.Context) ([]domain.Product, error)
}

func (m *mockCatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetCatalog(t *testing.T) {
	t.Run("returns the live catalog on success", func(t *testing.T) {
		catalog := &mockCatalogService{
			listFn: func(ctx context.Context) ([]domain.Product, error) {
				return []domain.Product{
					{ID: "p1", Name: "Kettle", PriceCents: 2999, Stock: 4},
				}, nil
			},
		}
		handler := queries.NewGetCatalogQueryHandler(catalog, discardLogger())

		products := handler.Handle(context.Background())

		if len(products) != 1 || products[0].ID != "p1" {
			t.Errorf("expected live catalog, got %+v", products)
		}
	})

	t.Run("serves the placeholder catalog on failure", func(t *testing.T) {
		catalog := &mockCatalogService{
			listFn: func(ctx context.Context) ([]domain.Product, error) {
				return nil, errors.New("connection refused")
			},
		}
		handler := queries.NewGetCatalogQueryHandler(catalog, discardLogger())

		products := handler.Handle(context.Background())

		if len(products) == 0 {
			t.Fatal("expected a non-empty fallback catalog")
		}
		for _, p := range products {
			if p.Stock != 0 {
				t.Errorf("expected zero stock on fallback entry %s, got %d", p.ID, p.Stock)
			}
		}
	})
}
