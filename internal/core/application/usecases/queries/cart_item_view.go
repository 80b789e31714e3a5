// Package queries contains read operations. Cart and checkout reads go
// through the session stores; placed orders are read from PostgreSQL with
// raw SQL.
package queries

import (
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
)

// CartItemView is a cart line as displayed in the cart and the order summary.
type CartItemView struct {
	ID                 kernel.UUID
	DishID             string
	Name               string
	UnitPrice          kernel.Money
	CustomizationDelta kernel.Money
	Quantity           int
	LineTotal          kernel.Money
	Customizations     []string
}

func toCartItemViews(items []cart.LineItem) []CartItemView {
	views := make([]CartItemView, 0, len(items))
	for _, item := range items {
		views = append(views, CartItemView{
			ID:                 item.ID(),
			DishID:             item.DishID(),
			Name:               item.Name(),
			UnitPrice:          item.UnitPrice(),
			CustomizationDelta: item.CustomizationDelta(),
			Quantity:           item.Quantity(),
			LineTotal:          item.LineTotal(),
			Customizations:     item.Customization().Labels(),
		})
	}
	return views
}
