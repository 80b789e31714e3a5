package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/pkg/guard"
)

var ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
	"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
)

// GetOrderTrackingQuery reads the tracking page of a placed order.
//
// Example:
//
//	query, _ := NewGetOrderTrackingQuery(orderID)
//	handler := NewGetOrderTrackingQueryHandler(db, 7*time.Second)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load order: %w", err)
//	}
//	fmt.Printf("%s (%d%%)\n", view.Stages[view.CurrentStageIndex].Name, view.ProgressPercent)
type GetOrderTrackingQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderTrackingQuery validates the order id.
func NewGetOrderTrackingQuery(orderID kernel.UUID) (GetOrderTrackingQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTrackingQuery{}, err
	}
	return GetOrderTrackingQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

// OrderID returns the order to read.
func (q GetOrderTrackingQuery) OrderID() kernel.UUID {
	return q.orderID
}

// TrackingStageView is one row of the progress timeline.
type TrackingStageView struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	ProgressPercent int    `json:"progressPercent"`
}

// TrackingItemView is one ordered item.
type TrackingItemView struct {
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	Customizations []string `json:"customizations,omitempty"`
}

// GetOrderTrackingQueryResponse is the order tracking page.
type GetOrderTrackingQueryResponse struct {
	OrderID           kernel.UUID
	Stages            []TrackingStageView
	CurrentStageIndex int
	ProgressPercent   int
	Status            tracking.Status
	PlacedAt          time.Time
	DeliveredAt       *time.Time
	CancelledAt       *time.Time
	CancelReason      string
	DeliveryAddress   string
	Items             []TrackingItemView
	Total             kernel.Money

	// EstimatedDeliveryAt is nil for cancelled orders.
	EstimatedDeliveryAt *time.Time
}
