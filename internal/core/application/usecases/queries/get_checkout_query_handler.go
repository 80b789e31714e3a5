package queries

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// GetCheckoutQueryHandler combines the wizard with the priced cart.
type GetCheckoutQueryHandler struct {
	carts     ports.CartRepository
	checkouts ports.CheckoutRepository
	validator checkout.FormValidator
	pricing   services.PricingEngine
	policy    services.PricingPolicy
}

// NewGetCheckoutQueryHandler creates the handler.
func NewGetCheckoutQueryHandler(
	carts ports.CartRepository,
	checkouts ports.CheckoutRepository,
	validator checkout.FormValidator,
	policy services.PricingPolicy,
) GetCheckoutQueryHandler {
	return GetCheckoutQueryHandler{
		carts:     carts,
		checkouts: checkouts,
		validator: validator,
		pricing:   services.NewPricingEngine(),
		policy:    policy,
	}
}

// Handle returns errs.ObjectNotFoundError for unknown carts.
func (h GetCheckoutQueryHandler) Handle(ctx context.Context, query GetCheckoutQuery) (GetCheckoutQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCheckoutQueryResponse{}, err
	}

	w, err := h.checkouts.Get(ctx, query.CartID())
	if err != nil {
		return GetCheckoutQueryResponse{}, err
	}

	c, err := h.carts.Get(ctx, query.CartID())
	if err != nil {
		return GetCheckoutQueryResponse{}, err
	}

	items := c.Snapshot()
	resp := GetCheckoutQueryResponse{
		CartID:     w.CartID(),
		Step:       w.Step(),
		Form:       w.Form(),
		Submission: w.Submission(),
		LastError:  w.LastError(),
		OrderID:    w.OrderID(),
		Items:      toCartItemViews(items),
		Summary:    h.pricing.ComputeWithPolicy(items, h.policy),
	}

	submitErr := w.SubmitError(h.validator)
	resp.CanSubmit = submitErr == nil && !c.IsEmpty()

	var verr *errs.ValidationError
	if errors.As(submitErr, &verr) {
		resp.SubmitBlocker = verr.Field
	}

	return resp, nil
}
