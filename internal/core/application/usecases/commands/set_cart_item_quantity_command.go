package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrSetCartItemQuantityCommandIsNotConstructed = errors.New(
	"SetCartItemQuantityCommand must be created via NewSetCartItemQuantityCommand constructor",
)

// SetCartItemQuantityCommand replaces the quantity of one line. Any integer is
// accepted; the cart clamps values below 1 to 1.
type SetCartItemQuantityCommand struct { //nolint:recvcheck //using for validation
	cartID     kernel.UUID
	lineItemID kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

// NewSetCartItemQuantityCommand validates both ids.
func NewSetCartItemQuantityCommand(
	cartID, lineItemID kernel.UUID,
	quantity int,
) (SetCartItemQuantityCommand, error) {
	cmd := SetCartItemQuantityCommand{
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(cartID.Validate(), lineItemID.Validate()); err != nil {
		return SetCartItemQuantityCommand{}, err
	}
	cmd.cartID = cartID
	cmd.lineItemID = lineItemID

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCartItemQuantityCommand) Validate() error {
	return c.guard.Validate(ErrSetCartItemQuantityCommandIsNotConstructed)
}

// CartID returns the target cart.
func (c SetCartItemQuantityCommand) CartID() kernel.UUID {
	return c.cartID
}

// LineItemID returns the line to change.
func (c SetCartItemQuantityCommand) LineItemID() kernel.UUID {
	return c.lineItemID
}

// Quantity returns the requested quantity.
func (c SetCartItemQuantityCommand) Quantity() int {
	return c.quantity
}
