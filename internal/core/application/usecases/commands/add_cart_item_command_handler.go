package commands

import (
	"context"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/metrics"
)

// AddCartItemCommandHandler resolves the customization and adds the dish.
// A failed resolution leaves the cart untouched. The cart is loaded only after
// the dish resolved, so a slow catalog never holds a stale copy.
type AddCartItemCommandHandler struct {
	catalog  ports.MenuCatalog
	resolver services.CustomizationResolver
	carts    ports.CartRepository
	notifier ports.CartNotifier
}

// NewAddCartItemCommandHandler creates a handler for adding dishes to carts.
func NewAddCartItemCommandHandler(
	catalog ports.MenuCatalog,
	resolver services.CustomizationResolver,
	carts ports.CartRepository,
	notifier ports.CartNotifier,
) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		catalog:  catalog,
		resolver: resolver,
		carts:    carts,
		notifier: notifier,
	}
}

// Handle returns the added or merged line item.
func (h *AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) (cart.LineItem, error) {
	if err := cmd.Validate(); err != nil {
		return cart.LineItem{}, err
	}

	dish, err := h.catalog.GetDish(ctx, cmd.DishID())
	if err != nil {
		return cart.LineItem{}, err
	}

	customization, err := h.resolver.Resolve(dish.Groups(), cmd.Selections())
	if err != nil {
		return cart.LineItem{}, err
	}

	var line cart.LineItem
	c, _, err := mutateCart(ctx, h.carts, cmd.CartID(), func(c *cart.Cart) error {
		var addErr error
		line, addErr = c.AddItem(dish, cmd.Quantity(), customization)
		return addErr
	})
	if err != nil {
		return cart.LineItem{}, err
	}

	metrics.CartMutationsTotal.WithLabelValues("add").Inc()
	notifyCartChanged(ctx, h.notifier, c)
	return line, nil
}

func notifyCartChanged(ctx context.Context, notifier ports.CartNotifier, c *cart.Cart) {
	notifier.NotifyCartChanged(ctx, ports.CartChanged{
		CartID:    c.ID(),
		Version:   c.Version(),
		ItemCount: c.ItemCount(),
	})
}
