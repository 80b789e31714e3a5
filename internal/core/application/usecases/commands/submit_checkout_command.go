package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrSubmitCheckoutCommandIsNotConstructed = errors.New(
	"SubmitCheckoutCommand must be created via NewSubmitCheckoutCommand constructor",
)

// SubmitCheckoutCommand places the order for a cart whose checkout is on the
// Review step.
//
// Example:
//
//	cmd, _ := NewSubmitCheckoutCommand(cartID)
//	orderID, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, checkout.ErrSubmitUnavailable):
//	    // consent missing, card details invalid or already submitting
//	case err != nil:
//	    // placement failed; the wizard is in Failed and may be retried
//	}
type SubmitCheckoutCommand struct { //nolint:recvcheck //using for validation
	cartID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSubmitCheckoutCommand validates the cart id.
func NewSubmitCheckoutCommand(cartID kernel.UUID) (SubmitCheckoutCommand, error) {
	if err := cartID.Validate(); err != nil {
		return SubmitCheckoutCommand{}, err
	}
	return SubmitCheckoutCommand{cartID: cartID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitCheckoutCommand) Validate() error {
	return c.guard.Validate(ErrSubmitCheckoutCommandIsNotConstructed)
}

// CartID returns the cart to check out.
func (c SubmitCheckoutCommand) CartID() kernel.UUID {
	return c.cartID
}
