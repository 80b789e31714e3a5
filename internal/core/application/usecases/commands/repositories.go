// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, state change, persistence.
package commands

import (
	"context"
	"errors"

	"storefront/internal/core/ports"
)

// ErrCartIsEmpty is returned when checking out a cart without line items.
var ErrCartIsEmpty = errors.New("cart is empty")

// Unit of Work interfaces provide transaction management for command handlers
// that change placed orders.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// TrackingRepoFactory provides access to the tracking repository within a transaction.
	TrackingRepoFactory interface {
		TrackingRepository() ports.TrackingRepository
	}

	// TrackingUoW manages transactions for placed-order operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.TrackingRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	TrackingUoW interface {
		TxManager
		TrackingRepoFactory
	}

	// TrackingUoWFactory creates new tracking unit of work instances.
	TrackingUoWFactory interface {
		Create() TrackingUoW
	}
)

// Breaker guards calls to a dependency that may be temporarily unavailable.
type Breaker interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
