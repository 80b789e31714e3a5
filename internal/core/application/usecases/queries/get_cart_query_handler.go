package queries

import (
	"context"

	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
)

// GetCartQueryHandler prices a stored cart with the configured policy.
type GetCartQueryHandler struct {
	carts   ports.CartRepository
	pricing services.PricingEngine
	policy  services.PricingPolicy
}

// NewGetCartQueryHandler creates the handler.
func NewGetCartQueryHandler(carts ports.CartRepository, policy services.PricingPolicy) GetCartQueryHandler {
	return GetCartQueryHandler{
		carts:   carts,
		pricing: services.NewPricingEngine(),
		policy:  policy,
	}
}

// Handle returns errs.ObjectNotFoundError for unknown carts.
func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	c, err := h.carts.Get(ctx, query.CartID())
	if err != nil {
		return GetCartQueryResponse{}, err
	}

	items := c.Snapshot()
	return GetCartQueryResponse{
		CartID:    c.ID(),
		Version:   c.Version(),
		Items:     toCartItemViews(items),
		Breakdown: h.pricing.ComputeWithPolicy(items, h.policy),
	}, nil
}
