package ports

import "context"

// EventBus defines the contract for publishing shopping session events.
type EventBus interface {
	PublishOrderPlaced(ctx context.Context, orderID string) error
	PublishCheckoutFailed(ctx context.Context, reason string) error
	PublishSessionReset(ctx context.Context) error
}
