package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrCreateCartCommandIsNotConstructed = errors.New(
	"CreateCartCommand must be created via NewCreateCartCommand constructor",
)

// CreateCartCommand opens a shopping session: an empty cart and a checkout
// wizard on the Address step, both keyed by cartID.
//
// Example:
//
//	cartID := kernel.NewUUID()
//	cmd, err := NewCreateCartCommand(cartID)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to open session: %w", err)
//	}
type CreateCartCommand struct { //nolint:recvcheck //using for validation
	cartID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateCartCommand validates the cart id.
func NewCreateCartCommand(cartID kernel.UUID) (CreateCartCommand, error) {
	cmd := CreateCartCommand{guard: guard.NewConstructorGuard()}

	if err := cmd.setCartID(cartID); err != nil {
		return CreateCartCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCartCommand) Validate() error {
	return c.guard.Validate(ErrCreateCartCommandIsNotConstructed)
}

// CartID returns the id of the cart to create.
func (c CreateCartCommand) CartID() kernel.UUID {
	return c.cartID
}

func (c *CreateCartCommand) setCartID(cartID kernel.UUID) error {
	if err := cartID.Validate(); err != nil {
		return err
	}
	c.cartID = cartID
	return nil
}
