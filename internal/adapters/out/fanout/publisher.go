// Package fanout delivers order events to several publishers.
package fanout

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/core/ports"
)

var _ ports.TrackingEventPublisher = Publisher(nil)

// Publisher hands every batch to each publisher in order. A failing publisher
// does not stop the others; all errors are joined.
type Publisher []ports.TrackingEventPublisher

// Publish implements ports.TrackingEventPublisher.
func (p Publisher) Publish(ctx context.Context, events ...tracking.Event) error {
	if len(events) == 0 {
		return nil
	}

	var errList []error
	for _, publisher := range p {
		if err := publisher.Publish(ctx, events...); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
