package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/guard"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// GetCartQuery reads a cart together with its price breakdown.
//
// Example:
//
//	query, err := NewGetCartQuery(cartID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
//	fmt.Printf("%d items, total %s\n", view.Breakdown.ItemCount, view.Breakdown.Total)
type GetCartQuery struct { //nolint:recvcheck //using for validation
	cartID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCartQuery validates the cart id.
func NewGetCartQuery(cartID kernel.UUID) (GetCartQuery, error) {
	if err := cartID.Validate(); err != nil {
		return GetCartQuery{}, err
	}
	return GetCartQuery{cartID: cartID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

// CartID returns the cart to read.
func (q GetCartQuery) CartID() kernel.UUID {
	return q.cartID
}

// GetCartQueryResponse is the cart page.
type GetCartQueryResponse struct {
	CartID    kernel.UUID
	Version   uint64
	Items     []CartItemView
	Breakdown services.PriceBreakdown
}
