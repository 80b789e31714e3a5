package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var (
	ErrNextCheckoutStepCommandIsNotConstructed = errors.New(
		"NextCheckoutStepCommand must be created via NewNextCheckoutStepCommand constructor",
	)
	ErrPreviousCheckoutStepCommandIsNotConstructed = errors.New(
		"PreviousCheckoutStepCommand must be created via NewPreviousCheckoutStepCommand constructor",
	)
)

// NextCheckoutStepCommand validates the current step and moves forward.
type NextCheckoutStepCommand struct { //nolint:recvcheck //using for validation
	cartID kernel.UUID

	guard guard.ConstructorGuard
}

// NewNextCheckoutStepCommand validates the cart id.
func NewNextCheckoutStepCommand(cartID kernel.UUID) (NextCheckoutStepCommand, error) {
	if err := cartID.Validate(); err != nil {
		return NextCheckoutStepCommand{}, err
	}
	return NextCheckoutStepCommand{cartID: cartID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c NextCheckoutStepCommand) Validate() error {
	return c.guard.Validate(ErrNextCheckoutStepCommandIsNotConstructed)
}

// CartID returns the cart whose checkout moves.
func (c NextCheckoutStepCommand) CartID() kernel.UUID {
	return c.cartID
}

// PreviousCheckoutStepCommand moves one step back without validation.
type PreviousCheckoutStepCommand struct { //nolint:recvcheck //using for validation
	cartID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPreviousCheckoutStepCommand validates the cart id.
func NewPreviousCheckoutStepCommand(cartID kernel.UUID) (PreviousCheckoutStepCommand, error) {
	if err := cartID.Validate(); err != nil {
		return PreviousCheckoutStepCommand{}, err
	}
	return PreviousCheckoutStepCommand{cartID: cartID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c PreviousCheckoutStepCommand) Validate() error {
	return c.guard.Validate(ErrPreviousCheckoutStepCommandIsNotConstructed)
}

// CartID returns the cart whose checkout moves.
func (c PreviousCheckoutStepCommand) CartID() kernel.UUID {
	return c.cartID
}
