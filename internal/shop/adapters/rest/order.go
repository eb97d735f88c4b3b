package rest

import (
	"context"
	"time"

	"github.com/dejobratic/shoplite/internal/shop/domain"
	"github.com/dejobratic/shoplite/internal/shop/ports"
)

type orderItemPayload struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type orderRequestPayload struct {
	Items           []orderItemPayload `json:"items"`
	TotalAmount     float64            `json:"totalAmount"`
	DeliveryAddress string             `json:"deliveryAddress"`
	OrderDate       string             `json:"orderDate"`
}

type orderResponsePayload struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	OrderID         string   `json:"orderId"`
	OutOfStockItems []string `json:"outOfStockItems"`
}

// Submit posts the order request once. Business outcomes, including stock
// rejections, come back in the result; everything else is a
// ServiceUnavailableError.
func (c *Client) Submit(ctx context.Context, req domain.OrderRequest) (ports.OrderResult, error) {
	items := make([]orderItemPayload, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orderItemPayload{
			ID:       item.ProductID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    centsToDecimal(item.PriceCents),
		})
	}

	payload := orderRequestPayload{
		Items:           items,
		TotalAmount:     centsToDecimal(req.TotalCents),
		DeliveryAddress: req.DeliveryAddress,
		OrderDate:       req.OrderDate.UTC().Format(time.RFC3339),
	}

	var resp orderResponsePayload
	if err := c.post(ctx, "/order", payload, &resp); err != nil {
		return ports.OrderResult{}, &domain.ServiceUnavailableError{Op: "place order", Err: err}
	}

	return ports.OrderResult{
		Success:         resp.Success,
		Message:         resp.Message,
		OrderID:         resp.OrderID,
		OutOfStockItems: resp.OutOfStockItems,
	}, nil
}
