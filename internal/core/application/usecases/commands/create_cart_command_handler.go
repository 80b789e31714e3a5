package commands

import (
	"context"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/ports"
)

// CreateCartCommandHandler creates the cart and its checkout wizard.
type CreateCartCommandHandler struct {
	carts     ports.CartRepository
	checkouts ports.CheckoutRepository
}

// NewCreateCartCommandHandler creates a handler for session creation.
func NewCreateCartCommandHandler(
	carts ports.CartRepository,
	checkouts ports.CheckoutRepository,
) CreateCartCommandHandler {
	return CreateCartCommandHandler{
		carts:     carts,
		checkouts: checkouts,
	}
}

// Handle stores a new empty cart and a fresh wizard.
func (h *CreateCartCommandHandler) Handle(ctx context.Context, cmd CreateCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	c, err := cart.NewCart(cmd.CartID())
	if err != nil {
		return err
	}

	w, err := checkout.NewWizard(cmd.CartID())
	if err != nil {
		return err
	}

	if err = h.carts.Add(ctx, c); err != nil {
		return err
	}

	return h.checkouts.Add(ctx, w)
}
