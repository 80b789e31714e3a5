package commands

import (
	"context"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/metrics"
)

// RemoveCartItemCommandHandler deletes cart lines. Removing a line that is
// not in the cart succeeds without notifying anyone.
type RemoveCartItemCommandHandler struct {
	carts    ports.CartRepository
	notifier ports.CartNotifier
}

// NewRemoveCartItemCommandHandler creates the handler.
func NewRemoveCartItemCommandHandler(
	carts ports.CartRepository,
	notifier ports.CartNotifier,
) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{carts: carts, notifier: notifier}
}

// Handle removes the line and notifies subscribers when something changed.
func (h *RemoveCartItemCommandHandler) Handle(ctx context.Context, cmd RemoveCartItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	c, changed, err := mutateCart(ctx, h.carts, cmd.CartID(), func(c *cart.Cart) error {
		c.RemoveItem(cmd.LineItemID())
		return nil
	})
	if err != nil || !changed {
		return err
	}

	metrics.CartMutationsTotal.WithLabelValues("remove").Inc()
	notifyCartChanged(ctx, h.notifier, c)
	return nil
}
