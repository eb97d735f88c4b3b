package ports

import (
	"context"

	"github.com/dejobratic/shoplite/internal/shop/domain"
)

// AuthService checks a passkey against the authentication service. A false
// result means the service explicitly rejected the passkey; transport
// failures come back as an error instead.
type AuthService interface {
	Authenticate(ctx context.Context, passkey string) (bool, error)
}

// CatalogService fetches the product catalog.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// OrderResult is the order service's decision on a submitted request.
// OutOfStockItems is populated on a stock rejection.
type OrderResult struct {
	Success         bool
	Message         string
	OrderID         string
	OutOfStockItems []string
}

// OrderService submits an order request, exactly once per call. Transport
// failures and malformed responses are returned as an error; business
// outcomes (including stock rejections) arrive in the result.
type OrderService interface {
	Submit(ctx context.Context, req domain.OrderRequest) (OrderResult, error)
}
