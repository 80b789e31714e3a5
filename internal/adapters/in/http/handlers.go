package http

import (
	"context"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/menu"
)

// Use case contracts the server depends on. Command handlers are passed by
// pointer, query handlers by value.
type (
	CreateCartHandler interface {
		Handle(ctx context.Context, cmd commands.CreateCartCommand) error
	}
	AddCartItemHandler interface {
		Handle(ctx context.Context, cmd commands.AddCartItemCommand) (cart.LineItem, error)
	}
	SetCartItemQuantityHandler interface {
		Handle(ctx context.Context, cmd commands.SetCartItemQuantityCommand) error
	}
	RemoveCartItemHandler interface {
		Handle(ctx context.Context, cmd commands.RemoveCartItemCommand) error
	}
	EditCheckoutFormHandler interface {
		Handle(ctx context.Context, cmd commands.EditCheckoutFormCommand) error
	}
	NextCheckoutStepHandler interface {
		Handle(ctx context.Context, cmd commands.NextCheckoutStepCommand) error
	}
	PreviousCheckoutStepHandler interface {
		Handle(ctx context.Context, cmd commands.PreviousCheckoutStepCommand) error
	}
	SubmitCheckoutHandler interface {
		Handle(ctx context.Context, cmd commands.SubmitCheckoutCommand) (kernel.UUID, error)
	}
	CancelOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) error
	}

	GetCartHandler interface {
		Handle(ctx context.Context, query queries.GetCartQuery) (queries.GetCartQueryResponse, error)
	}
	GetCheckoutHandler interface {
		Handle(ctx context.Context, query queries.GetCheckoutQuery) (queries.GetCheckoutQueryResponse, error)
	}
	GetOrderTrackingHandler interface {
		Handle(ctx context.Context, query queries.GetOrderTrackingQuery) (queries.GetOrderTrackingQueryResponse, error)
	}

	// MenuLister serves the dish list.
	MenuLister interface {
		ListDishes(ctx context.Context) ([]menu.Dish, error)
	}
)

// Handlers groups everything NewServer needs.
type Handlers struct {
	CreateCart           CreateCartHandler
	AddCartItem          AddCartItemHandler
	SetCartItemQuantity  SetCartItemQuantityHandler
	RemoveCartItem       RemoveCartItemHandler
	EditCheckoutForm     EditCheckoutFormHandler
	NextCheckoutStep     NextCheckoutStepHandler
	PreviousCheckoutStep PreviousCheckoutStepHandler
	SubmitCheckout       SubmitCheckoutHandler
	CancelOrder          CancelOrderHandler

	GetCart          GetCartHandler
	GetCheckout      GetCheckoutHandler
	GetOrderTracking GetOrderTrackingHandler

	Menu MenuLister
}
