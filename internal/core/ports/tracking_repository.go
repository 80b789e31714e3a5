// Package ports defines the contracts between the storefront core and its
// infrastructure: repositories, unit of work, clock, menu catalog and the
// outbound notification channels.
package ports

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/tracking"
)

// ErrTrackingChanged is returned by TrackingRepository.Update when the stored
// order was delivered or cancelled after it was read.
var ErrTrackingChanged = errors.New("order was changed by another request")

// TrackingRepository defines the persistence contract for placed orders and
// their delivery progress.
type TrackingRepository interface {
	// Add persists a newly placed order.
	// The tracking must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *tracking.Tracking) error

	// Update persists stage changes and cancellations of an existing order.
	// Returns ErrTrackingChanged when the stored order is no longer in progress.
	Update(ctx context.Context, aggregate *tracking.Tracking) error

	// Get retrieves a tracking by order id for a change. Inside a transaction
	// the order stays locked until it ends.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, orderID kernel.UUID) (*tracking.Tracking, error)

	// GetAllInProgress retrieves every order that has not been delivered or
	// cancelled, oldest placement first. Orders locked by another transaction
	// may be left out.
	GetAllInProgress(ctx context.Context) ([]*tracking.Tracking, error)
}
