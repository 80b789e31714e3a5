package ports

import (
	"context"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/kernel"
)

// CartRepository stores in-session carts. Implementations hand out copies, so
// a caller must write the cart back after mutating.
type CartRepository interface {
	Add(ctx context.Context, aggregate *cart.Cart) error

	// Get returns errs.ObjectNotFoundError for unknown carts.
	Get(ctx context.Context, cartID kernel.UUID) (*cart.Cart, error)

	// UpdateIf stores aggregate only when the stored cart is still at
	// expectedVersion. It returns false, without error, on a version mismatch.
	UpdateIf(ctx context.Context, aggregate *cart.Cart, expectedVersion uint64) (bool, error)
}

// CheckoutRepository stores one checkout wizard per cart.
type CheckoutRepository interface {
	Add(ctx context.Context, aggregate *checkout.Wizard) error
	Update(ctx context.Context, aggregate *checkout.Wizard) error

	// Get returns errs.ObjectNotFoundError for unknown carts.
	Get(ctx context.Context, cartID kernel.UUID) (*checkout.Wizard, error)

	// UpdateIf stores aggregate only when the stored wizard satisfies cond.
	// It returns false, without error, when cond rejected the stored state.
	UpdateIf(ctx context.Context, aggregate *checkout.Wizard, cond func(stored *checkout.Wizard) bool) (bool, error)
}
