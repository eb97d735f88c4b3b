package adapters

import (
	"context"
	"time"

	"github.com/dejobratic/shoplite/internal/events"
	"github.com/dejobratic/shoplite/internal/shop/ports"
	"github.com/dejobratic/shoplite/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// ObservableEventBus wraps a bus with tracing and publish metrics.
type ObservableEventBus struct {
	bus     ports.EventBus
	metrics *events.Metrics
}

func NewObservableEventBus(bus ports.EventBus, metrics *events.Metrics) *ObservableEventBus {
	return &ObservableEventBus{
		bus:     bus,
		metrics: metrics,
	}
}

func (e *ObservableEventBus) PublishOrderPlaced(ctx context.Context, orderID string) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishOrderPlaced")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", orderID),
		attribute.String("event.type", "order.placed"),
	)

	start := time.Now()
	err := e.bus.PublishOrderPlaced(ctx, orderID)
	e.metrics.RecordPublish(ctx, "order.placed", time.Since(start).Seconds(), err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (e *ObservableEventBus) PublishCheckoutFailed(ctx context.Context, reason string) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishCheckoutFailed")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("event.type", "checkout.failed"),
		attribute.String("failure.reason", reason),
	)

	start := time.Now()
	err := e.bus.PublishCheckoutFailed(ctx, reason)
	e.metrics.RecordPublish(ctx, "checkout.failed", time.Since(start).Seconds(), err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (e *ObservableEventBus) PublishSessionReset(ctx context.Context) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishSessionReset")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("event.type", "session.reset"),
	)

	start := time.Now()
	err := e.bus.PublishSessionReset(ctx)
	e.metrics.RecordPublish(ctx, "session.reset", time.Since(start).Seconds(), err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
