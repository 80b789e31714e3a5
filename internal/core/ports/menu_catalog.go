package ports

import (
	"context"

	"storefront/internal/core/domain/model/menu"
)

// MenuCatalog is the read-only source of dishes that can be added to a cart.
type MenuCatalog interface {
	// GetDish returns errs.ObjectNotFoundError for unknown dish ids.
	GetDish(ctx context.Context, dishID string) (menu.Dish, error)

	// ListDishes returns all dishes in menu order.
	ListDishes(ctx context.Context) ([]menu.Dish, error)
}
