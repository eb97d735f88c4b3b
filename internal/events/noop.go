// Package events publishes shopping session lifecycle events. The noop bus
// logs them instead of delivering anywhere, which is all the current
// deployment needs; a broker-backed bus can replace it behind the same port.
package events

import (
	"context"
	"log/slog"
)

// NoopBus logs events at debug level without delivering them.
type NoopBus struct{}

// NewNoopBus returns a new no-op event publisher.
func NewNoopBus() *NoopBus {
	return &NoopBus{}
}

func (n *NoopBus) PublishOrderPlaced(_ context.Context, orderID string) error {
	slog.Debug("event::order_placed", "order_id", orderID)
	return nil
}

func (n *NoopBus) PublishCheckoutFailed(_ context.Context, reason string) error {
	slog.Debug("event::checkout_failed", "reason", reason)
	return nil
}

func (n *NoopBus) PublishSessionReset(_ context.Context) error {
	slog.Debug("event::session_reset")
	return nil
}
