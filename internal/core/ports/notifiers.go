package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/tracking"
)

// CartChanged tells subscribers that a cart changed. Consumers re-read the
// cart; the payload only carries what a header badge needs.
type CartChanged struct {
	CartID    kernel.UUID
	Version   uint64
	ItemCount int
}

// CartNotifier delivers cart change notifications. Delivery is best effort and
// implementations may coalesce bursts of changes.
type CartNotifier interface {
	NotifyCartChanged(ctx context.Context, change CartChanged)
}

// TrackingEventPublisher delivers order lifecycle events after they were committed.
type TrackingEventPublisher interface {
	Publish(ctx context.Context, events ...tracking.Event) error
}
