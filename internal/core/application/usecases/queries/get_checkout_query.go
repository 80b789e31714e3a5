package queries

import (
	"errors"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/guard"
)

var ErrGetCheckoutQueryIsNotConstructed = errors.New(
	"GetCheckoutQuery must be created via NewGetCheckoutQuery constructor",
)

// GetCheckoutQuery reads the checkout wizard of a cart with its order summary.
type GetCheckoutQuery struct { //nolint:recvcheck //using for validation
	cartID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCheckoutQuery validates the cart id.
func NewGetCheckoutQuery(cartID kernel.UUID) (GetCheckoutQuery, error) {
	if err := cartID.Validate(); err != nil {
		return GetCheckoutQuery{}, err
	}
	return GetCheckoutQuery{cartID: cartID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCheckoutQuery) Validate() error {
	return q.guard.Validate(ErrGetCheckoutQueryIsNotConstructed)
}

// CartID returns the cart whose checkout is read.
func (q GetCheckoutQuery) CartID() kernel.UUID {
	return q.cartID
}

// GetCheckoutQueryResponse is the checkout page. CanSubmit drives the Place
// Order button; SubmitBlocker names the first field keeping it disabled.
type GetCheckoutQueryResponse struct {
	CartID        kernel.UUID
	Step          checkout.Step
	Form          checkout.Form
	Submission    checkout.SubmissionState
	CanSubmit     bool
	SubmitBlocker string
	LastError     string
	OrderID       *kernel.UUID
	Items         []CartItemView
	Summary       services.PriceBreakdown
}
