package http

import (
	"time"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/menu"
	"storefront/internal/core/domain/services"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type createCartResponse struct {
	CartID string `json:"cartId"`
}

type addCartItemRequest struct {
	DishID     string              `json:"dishId"`
	Quantity   *int                `json:"quantity"`
	Selections map[string][]string `json:"selections"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

type submitCheckoutResponse struct {
	OrderID string `json:"orderId"`
}

type cartItem struct {
	ID                 string   `json:"id"`
	DishID             string   `json:"dishId"`
	Name               string   `json:"name"`
	UnitPrice          string   `json:"unitPrice"`
	CustomizationDelta string   `json:"customizationDelta"`
	Quantity           int      `json:"quantity"`
	LineTotal          string   `json:"lineTotal"`
	Customizations     []string `json:"customizations"`
}

type priceBreakdown struct {
	Subtotal    string `json:"subtotal"`
	Discount    string `json:"discount"`
	DeliveryFee string `json:"deliveryFee"`
	TaxRate     string `json:"taxRate"`
	TaxAmount   string `json:"taxAmount"`
	Total       string `json:"total"`
	ItemCount   int    `json:"itemCount"`
}

type cartResponse struct {
	CartID    string         `json:"cartId"`
	Version   uint64         `json:"version"`
	Items     []cartItem     `json:"items"`
	Breakdown priceBreakdown `json:"breakdown"`
}

type checkoutResponse struct {
	CartID        string         `json:"cartId"`
	Step          string         `json:"step"`
	StepNumber    int            `json:"stepNumber"`
	Form          checkout.Form  `json:"form"`
	Submission    string         `json:"submission"`
	CanSubmit     bool           `json:"canSubmit"`
	SubmitBlocker string         `json:"submitBlocker,omitempty"`
	LastError     string         `json:"lastError,omitempty"`
	OrderID       string         `json:"orderId,omitempty"`
	Items         []cartItem     `json:"items"`
	Summary       priceBreakdown `json:"summary"`
}

type trackingResponse struct {
	OrderID             string                      `json:"orderId"`
	Stages              []queries.TrackingStageView `json:"stages"`
	CurrentStageIndex   int                         `json:"currentStageIndex"`
	ProgressPercent     int                         `json:"progressPercent"`
	Status              string                      `json:"status"`
	PlacedAt            time.Time                   `json:"placedAt"`
	EstimatedDeliveryAt *time.Time                  `json:"estimatedDeliveryAt,omitempty"`
	DeliveredAt         *time.Time                  `json:"deliveredAt,omitempty"`
	CancelledAt         *time.Time                  `json:"cancelledAt,omitempty"`
	CancelReason        string                      `json:"cancelReason,omitempty"`
	DeliveryAddress     string                      `json:"deliveryAddress"`
	Items               []queries.TrackingItemView  `json:"items"`
	Total               string                      `json:"total"`
}

type menuChoice struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	PriceDelta string `json:"priceDelta"`
}

type menuGroup struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Kind     string       `json:"kind"`
	Required bool         `json:"required"`
	Choices  []menuChoice `json:"choices"`
}

type menuDish struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Price  string      `json:"price"`
	Groups []menuGroup `json:"groups,omitempty"`
}

func toCartItems(views []queries.CartItemView) []cartItem {
	items := make([]cartItem, 0, len(views))
	for _, v := range views {
		items = append(items, cartItem{
			ID:                 v.ID.String(),
			DishID:             v.DishID,
			Name:               v.Name,
			UnitPrice:          v.UnitPrice.String(),
			CustomizationDelta: v.CustomizationDelta.String(),
			Quantity:           v.Quantity,
			LineTotal:          v.LineTotal.String(),
			Customizations:     append([]string{}, v.Customizations...),
		})
	}
	return items
}

func toPriceBreakdown(b services.PriceBreakdown) priceBreakdown {
	return priceBreakdown{
		Subtotal:    b.Subtotal.String(),
		Discount:    b.Discount.String(),
		DeliveryFee: b.DeliveryFee.String(),
		TaxRate:     b.TaxRate.String(),
		TaxAmount:   b.TaxAmount.String(),
		Total:       b.Total.String(),
		ItemCount:   b.ItemCount,
	}
}

func toCartResponse(r queries.GetCartQueryResponse) cartResponse {
	return cartResponse{
		CartID:    r.CartID.String(),
		Version:   r.Version,
		Items:     toCartItems(r.Items),
		Breakdown: toPriceBreakdown(r.Breakdown),
	}
}

func toCheckoutResponse(r queries.GetCheckoutQueryResponse) checkoutResponse {
	resp := checkoutResponse{
		CartID:        r.CartID.String(),
		Step:          r.Step.String(),
		StepNumber:    r.Step.Number(),
		Form:          r.Form,
		Submission:    r.Submission.String(),
		CanSubmit:     r.CanSubmit,
		SubmitBlocker: r.SubmitBlocker,
		LastError:     r.LastError,
		Items:         toCartItems(r.Items),
		Summary:       toPriceBreakdown(r.Summary),
	}
	if r.OrderID != nil {
		resp.OrderID = r.OrderID.String()
	}
	return resp
}

func toTrackingResponse(r queries.GetOrderTrackingQueryResponse) trackingResponse {
	return trackingResponse{
		OrderID:             r.OrderID.String(),
		Stages:              r.Stages,
		CurrentStageIndex:   r.CurrentStageIndex,
		ProgressPercent:     r.ProgressPercent,
		Status:              r.Status.String(),
		PlacedAt:            r.PlacedAt,
		EstimatedDeliveryAt: r.EstimatedDeliveryAt,
		DeliveredAt:         r.DeliveredAt,
		CancelledAt:         r.CancelledAt,
		CancelReason:        r.CancelReason,
		DeliveryAddress:     r.DeliveryAddress,
		Items:               r.Items,
		Total:               r.Total.String(),
	}
}

func toMenu(dishes []menu.Dish) []menuDish {
	resp := make([]menuDish, 0, len(dishes))
	for _, d := range dishes {
		dish := menuDish{ID: d.ID(), Name: d.Name(), Price: d.Price().String()}
		for _, g := range d.Groups() {
			group := menuGroup{ID: g.ID(), Title: g.Title(), Kind: g.Kind().String(), Required: g.Required()}
			for _, c := range g.Choices() {
				group.Choices = append(group.Choices, menuChoice{
					ID:         c.ID(),
					Label:      c.Label(),
					PriceDelta: c.PriceDelta().String(),
				})
			}
			dish.Groups = append(dish.Groups, group)
		}
		resp = append(resp, dish)
	}
	return resp
}
