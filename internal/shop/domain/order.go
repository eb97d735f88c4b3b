package domain

import (
	"strings"
	"time"
)

// OrderItem is a frozen snapshot of one cart line at checkout time.
type OrderItem struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
}

// OrderRequest captures everything submitted to the order service. It is
// built from a copy of the cart lines, so mutating the cart while a request
// is in flight does not affect it.
type OrderRequest struct {
	Items           []OrderItem `json:"items"`
	TotalCents      int64       `json:"total_cents"`
	DeliveryAddress string      `json:"delivery_address"`
	OrderDate       time.Time   `json:"order_date"`
}

// NewOrderRequest snapshots the given lines into an immutable request.
// The total is computed from the snapshot itself.
func NewOrderRequest(lines []CartLine, deliveryAddress string, at time.Time) OrderRequest {
	items := make([]OrderItem, 0, len(lines))
	var total int64
	for _, line := range lines {
		items = append(items, OrderItem{
			ProductID:  line.ProductID,
			Name:       line.Name,
			Quantity:   line.Quantity,
			PriceCents: line.PriceCents,
		})
		total += line.PriceCents * int64(line.Quantity)
	}
	return OrderRequest{
		Items:           items,
		TotalCents:      total,
		DeliveryAddress: strings.TrimSpace(deliveryAddress),
		OrderDate:       at.UTC(),
	}
}

// Validate ensures the request satisfies checkout preconditions.
func (r OrderRequest) Validate() error {
	if strings.TrimSpace(r.DeliveryAddress) == "" {
		return &ValidationError{Field: "delivery_address", Reason: "is required"}
	}
	if len(r.Items) == 0 {
		return &ValidationError{Field: "items", Reason: "cart must not be empty"}
	}
	return nil
}

// Order is a successfully placed order: the request plus the server-issued
// id. Orders are immutable and append-only in the ledger; there is no cancel
// or edit flow.
type Order struct {
	ID              string      `json:"id"`
	Items           []OrderItem `json:"items"`
	TotalCents      int64       `json:"total_cents"`
	DeliveryAddress string      `json:"delivery_address"`
	PlacedAt        time.Time   `json:"placed_at"`
}

// CompleteOrder binds a server-issued id to a submitted request.
func CompleteOrder(req OrderRequest, orderID string) Order {
	return Order{
		ID:              orderID,
		Items:           req.Items,
		TotalCents:      req.TotalCents,
		DeliveryAddress: req.DeliveryAddress,
		PlacedAt:        req.OrderDate,
	}
}
