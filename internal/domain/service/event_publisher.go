package service

import "context"

// EventPublisher bridges order events to an external pub/sub system for
// consumers outside this process (analytics, audit). Optional: a no-op
// implementation is used when no provider is configured.
type EventPublisher interface {
	// PublishOrderEvent publishes an order event to the configured provider.
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases provider resources.
	Close() error
}
