package commands

import (
	"context"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/metrics"
)

// SetCartItemQuantityCommandHandler changes line quantities.
type SetCartItemQuantityCommandHandler struct {
	carts    ports.CartRepository
	notifier ports.CartNotifier
}

// NewSetCartItemQuantityCommandHandler creates the handler.
func NewSetCartItemQuantityCommandHandler(
	carts ports.CartRepository,
	notifier ports.CartNotifier,
) SetCartItemQuantityCommandHandler {
	return SetCartItemQuantityCommandHandler{carts: carts, notifier: notifier}
}

// Handle returns errs.ObjectNotFoundError for unknown carts or lines.
// Subscribers are notified only when the quantity actually changed.
func (h *SetCartItemQuantityCommandHandler) Handle(ctx context.Context, cmd SetCartItemQuantityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	c, changed, err := mutateCart(ctx, h.carts, cmd.CartID(), func(c *cart.Cart) error {
		return c.SetQuantity(cmd.LineItemID(), cmd.Quantity())
	})
	if err != nil || !changed {
		return err
	}

	metrics.CartMutationsTotal.WithLabelValues("set_quantity").Inc()
	notifyCartChanged(ctx, h.notifier, c)
	return nil
}
