package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dejobratic/shoplite/internal/shop/domain"
	"github.com/dejobratic/shoplite/internal/shop/metrics"
	"github.com/dejobratic/shoplite/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableCheckoutHandler struct {
	handler CheckoutHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableCheckoutHandler(handler CheckoutHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableCheckoutHandler {
	return &ObservableCheckoutHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableCheckoutHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "PlaceOrderCommand.Handle")
	defer span.End()

	start := time.Now()
	var success bool
	defer func() {
		duration := time.Since(start).Seconds()
		o.metrics.RecordCheckoutDuration(ctx, duration)
		o.metrics.RecordOrderPlaced(ctx, success)
	}()

	o.logger.InfoContext(ctx, "placing order",
		"line_count", len(cmd.Lines),
	)

	order, err := o.handler.Handle(ctx, cmd)

	if err != nil {
		var stockErr *domain.StockConflictError
		if errors.As(err, &stockErr) {
			o.metrics.RecordStockConflict(ctx, len(stockErr.ProductIDs))
			o.logger.WarnContext(ctx, "checkout rejected for stock",
				"out_of_stock", stockErr.ProductIDs,
			)
		} else {
			o.logger.ErrorContext(ctx, "failed to place order",
				"error", err,
			)
		}
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", order.ID),
		attribute.Int64("order.total_cents", order.TotalCents),
		attribute.Int("order.item_count", len(order.Items)),
	)

	o.logger.InfoContext(ctx, "order placed successfully",
		"order_id", order.ID,
		"total_cents", order.TotalCents,
	)

	success = true
	telemetry.SetSpanSuccess(span)

	return order, nil
}
