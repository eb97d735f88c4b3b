package commands

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dejobratic/shoplite/internal/shop/domain"
	"github.com/dejobratic/shoplite/internal/shop/ports"
)

// PlaceOrderCommand carries a decoupled copy of the cart lines and the
// delivery address for one checkout attempt.
type PlaceOrderCommand struct {
	Lines           []domain.CartLine
	DeliveryAddress string
}

func (c PlaceOrderCommand) Validate() error {
	if strings.TrimSpace(c.DeliveryAddress) == "" {
		return &domain.ValidationError{Field: "delivery_address", Reason: "is required"}
	}
	if len(c.Lines) == 0 {
		return &domain.ValidationError{Field: "items", Reason: "cart must not be empty"}
	}
	return nil
}

type CheckoutHandler interface {
	Handle(ctx context.Context, cmd PlaceOrderCommand) (*domain.Order, error)
}

// PlaceOrderCommandHandler is the checkout coordinator. It holds no session
// state and performs no persistence; the caller appends to the ledger and
// clears the cart on success. Handle is non-reentrant: a second call while
// one is outstanding fails fast with ErrCheckoutInFlight.
type PlaceOrderCommandHandler struct {
	orders   ports.OrderService
	inFlight atomic.Bool
}

func NewPlaceOrderCommandHandler(orders ports.OrderService) *PlaceOrderCommandHandler {
	return &PlaceOrderCommandHandler{orders: orders}
}

func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*domain.Order, error) {
	if !h.inFlight.CompareAndSwap(false, true) {
		return nil, domain.ErrCheckoutInFlight
	}
	defer h.inFlight.Store(false)

	// Validation never reaches the network.
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	req := domain.NewOrderRequest(cmd.Lines, cmd.DeliveryAddress, time.Now().UTC())
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// At most one delivery attempt per call; no client-side stock check.
	result, err := h.orders.Submit(ctx, req)
	if err != nil {
		return nil, err
	}

	if !result.Success {
		if len(result.OutOfStockItems) > 0 {
			return nil, &domain.StockConflictError{ProductIDs: result.OutOfStockItems}
		}
		return nil, &domain.ServiceUnavailableError{
			Op:  "place order",
			Err: fmt.Errorf("order rejected: %s", result.Message),
		}
	}

	if strings.TrimSpace(result.OrderID) == "" {
		return nil, &domain.ServiceUnavailableError{
			Op:  "place order",
			Err: fmt.Errorf("success response missing order id"),
		}
	}

	order := domain.CompleteOrder(req, result.OrderID)
	return &order, nil
}
