package commands

import (
	"errors"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrEditCheckoutFormCommandIsNotConstructed = errors.New(
	"EditCheckoutFormCommand must be created via NewEditCheckoutFormCommand constructor",
)

// EditCheckoutFormCommand replaces the values of a checkout form. Values are
// not validated here; each step validates its own fields on Next.
type EditCheckoutFormCommand struct { //nolint:recvcheck //using for validation
	cartID kernel.UUID
	form   checkout.Form

	guard guard.ConstructorGuard
}

// NewEditCheckoutFormCommand validates the cart id.
func NewEditCheckoutFormCommand(cartID kernel.UUID, form checkout.Form) (EditCheckoutFormCommand, error) {
	if err := cartID.Validate(); err != nil {
		return EditCheckoutFormCommand{}, err
	}

	return EditCheckoutFormCommand{
		cartID: cartID,
		form:   form,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c EditCheckoutFormCommand) Validate() error {
	return c.guard.Validate(ErrEditCheckoutFormCommandIsNotConstructed)
}

// CartID returns the cart whose checkout is edited.
func (c EditCheckoutFormCommand) CartID() kernel.UUID {
	return c.cartID
}

// Form returns the new form values.
func (c EditCheckoutFormCommand) Form() checkout.Form {
	return c.form
}
