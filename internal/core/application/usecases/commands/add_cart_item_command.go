package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/menu"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrAddCartItemCommandIsNotConstructed = errors.New(
	"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
)

// AddCartItemCommand adds a dish, optionally customized, to a cart.
// Quantities below 1 are accepted here and clamped by the cart.
//
// Example:
//
//	cmd, err := NewAddCartItemCommand(cartID, "d3", 1, menu.Selections{
//	    "c1": {"medium-rare"},
//	    "c2": {"peppercorn"},
//	})
//	line, err := handler.Handle(ctx, cmd)
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	cartID     kernel.UUID
	dishID     string
	quantity   int
	selections menu.Selections

	guard guard.ConstructorGuard
}

// NewAddCartItemCommand validates the cart and dish ids.
func NewAddCartItemCommand(
	cartID kernel.UUID,
	dishID string,
	quantity int,
	selections menu.Selections,
) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCartID(cartID),
		cmd.setDishID(dishID),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	cmd.selections = make(menu.Selections, len(selections))
	for group, choices := range selections {
		cmd.selections[group] = append([]string(nil), choices...)
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

// CartID returns the target cart.
func (c AddCartItemCommand) CartID() kernel.UUID {
	return c.cartID
}

// DishID returns the dish to add.
func (c AddCartItemCommand) DishID() string {
	return c.dishID
}

// Quantity returns the requested quantity, possibly below 1.
func (c AddCartItemCommand) Quantity() int {
	return c.quantity
}

// Selections returns the raw customization choices.
func (c AddCartItemCommand) Selections() menu.Selections {
	return c.selections
}

func (c *AddCartItemCommand) setCartID(cartID kernel.UUID) error {
	if err := cartID.Validate(); err != nil {
		return err
	}
	c.cartID = cartID
	return nil
}

func (c *AddCartItemCommand) setDishID(dishID string) error {
	if strings.TrimSpace(dishID) == "" {
		return errs.NewValueIsRequiredError("dish id")
	}
	c.dishID = dishID
	return nil
}
