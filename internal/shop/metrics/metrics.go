package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	ordersPlacedTotal   metric.Int64Counter
	checkoutDuration    metric.Float64Histogram
	stockConflictsTotal metric.Int64Counter
	loginAttemptsTotal  metric.Int64Counter
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.ordersPlacedTotal, err = meter.Int64Counter(
		"orders_placed_total",
		metric.WithDescription("Total number of checkout attempts by outcome"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create orders_placed_total counter: %w", err)
	}

	m.checkoutDuration, err = meter.Float64Histogram(
		"checkout_duration_seconds",
		metric.WithDescription("Duration of checkout operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create checkout_duration histogram: %w", err)
	}

	m.stockConflictsTotal, err = meter.Int64Counter(
		"stock_conflicts_total",
		metric.WithDescription("Checkouts rejected by the order service for insufficient stock"),
		metric.WithUnit("{conflict}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create stock_conflicts_total counter: %w", err)
	}

	m.loginAttemptsTotal, err = meter.Int64Counter(
		"login_attempts_total",
		metric.WithDescription("Login attempts by outcome"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create login_attempts_total counter: %w", err)
	}

	return m, nil
}

func (m *Metrics) RecordOrderPlaced(ctx context.Context, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.ordersPlacedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
}

func (m *Metrics) RecordCheckoutDuration(ctx context.Context, durationSeconds float64) {
	m.checkoutDuration.Record(ctx, durationSeconds)
}

func (m *Metrics) RecordStockConflict(ctx context.Context, itemCount int) {
	m.stockConflictsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("item_count", itemCount),
	))
}

func (m *Metrics) RecordLoginAttempt(ctx context.Context, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.loginAttemptsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
}
