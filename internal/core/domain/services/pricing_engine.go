package services

import (
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// PricingPolicy holds the order-level charges applied on top of the items.
type PricingPolicy struct {
	Discount    kernel.Money
	DeliveryFee kernel.Money
	TaxRate     kernel.TaxRate
}

// PriceBreakdown is the result of a pricing computation.
//
//	subtotal  = Σ (unitPrice + customizationDelta) * quantity
//	taxAmount = round2(subtotal * taxRate), half away from zero
//	total     = max(0, subtotal - discount + deliveryFee + taxAmount)
type PriceBreakdown struct {
	Subtotal    kernel.Money
	Discount    kernel.Money
	DeliveryFee kernel.Money
	TaxRate     kernel.TaxRate
	TaxAmount   kernel.Money
	Total       kernel.Money
	ItemCount   int
}

// PricingEngine computes price breakdowns for cart snapshots.
//
// Example usage:
//
//	engine := services.NewPricingEngine()
//	breakdown := engine.Compute(c.Snapshot(), policy.Discount, policy.DeliveryFee, policy.TaxRate)
//	fmt.Println(breakdown.Total) // "35.28"
type PricingEngine struct{}

// NewPricingEngine creates a PricingEngine.
func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

// Compute never fails: every input is already a valid Money or TaxRate, and a
// discount larger than the rest of the bill only drives the total down to 0.
// The discount is applied to the total, never to the subtotal or the tax base.
func (PricingEngine) Compute(
	items []cart.LineItem,
	discount, deliveryFee kernel.Money,
	taxRate kernel.TaxRate,
) PriceBreakdown {
	subtotal := kernel.ZeroMoney()
	count := 0
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
		count += item.Quantity()
	}

	taxAmount := taxRate.Apply(subtotal)

	total := subtotal.Amount().
		Sub(discount.Amount()).
		Add(deliveryFee.Amount()).
		Add(taxAmount.Amount())
	total = decimal.Max(total, decimal.Zero)

	// total is a sum of 2-place amounts clamped at zero, so it is always valid Money.
	totalMoney, _ := kernel.NewMoney(total)

	return PriceBreakdown{
		Subtotal:    subtotal,
		Discount:    discount,
		DeliveryFee: deliveryFee,
		TaxRate:     taxRate,
		TaxAmount:   taxAmount,
		Total:       totalMoney,
		ItemCount:   count,
	}
}

// ComputeWithPolicy is Compute with the charges taken from policy.
func (e PricingEngine) ComputeWithPolicy(items []cart.LineItem, policy PricingPolicy) PriceBreakdown {
	return e.Compute(items, policy.Discount, policy.DeliveryFee, policy.TaxRate)
}
