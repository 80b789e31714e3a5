package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrRemoveCartItemCommandIsNotConstructed = errors.New(
	"RemoveCartItemCommand must be created via NewRemoveCartItemCommand constructor",
)

// RemoveCartItemCommand deletes one line from a cart.
type RemoveCartItemCommand struct { //nolint:recvcheck //using for validation
	cartID     kernel.UUID
	lineItemID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveCartItemCommand validates both ids.
func NewRemoveCartItemCommand(cartID, lineItemID kernel.UUID) (RemoveCartItemCommand, error) {
	if err := errors.Join(cartID.Validate(), lineItemID.Validate()); err != nil {
		return RemoveCartItemCommand{}, err
	}

	return RemoveCartItemCommand{
		cartID:     cartID,
		lineItemID: lineItemID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveCartItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartItemCommandIsNotConstructed)
}

// CartID returns the target cart.
func (c RemoveCartItemCommand) CartID() kernel.UUID {
	return c.cartID
}

// LineItemID returns the line to remove.
func (c RemoveCartItemCommand) LineItemID() kernel.UUID {
	return c.lineItemID
}
