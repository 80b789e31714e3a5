package commands

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
)

// ErrCartChanged is returned when a cart kept changing underneath a mutation
// for maxCartWriteAttempts attempts in a row.
var ErrCartChanged = errors.New("cart was changed by another request, please retry")

const maxCartWriteAttempts = 5

// mutateCart loads the cart, applies mutate and writes it back only if nobody
// else wrote it in between. A lost race reloads the cart and applies mutate
// again, so mutate must be safe to repeat on a fresh copy.
//
// It reports whether the cart changed. A mutation that leaves the version
// untouched is not written.
func mutateCart(
	ctx context.Context,
	carts ports.CartRepository,
	cartID kernel.UUID,
	mutate func(c *cart.Cart) error,
) (*cart.Cart, bool, error) {
	for range maxCartWriteAttempts {
		c, err := carts.Get(ctx, cartID)
		if err != nil {
			return nil, false, err
		}

		expected := c.Version()
		if err = mutate(c); err != nil {
			return nil, false, err
		}
		if c.Version() == expected {
			return c, false, nil
		}

		stored, err := carts.UpdateIf(ctx, c, expected)
		if err != nil {
			return nil, false, err
		}
		if stored {
			return c, true, nil
		}
	}

	return nil, false, ErrCartChanged
}
