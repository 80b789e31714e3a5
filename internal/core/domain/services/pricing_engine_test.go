package services_test

import (
	"testing"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/menu"
	"storefront/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineItem(t *testing.T, price string, quantity int, deltas ...string) cart.LineItem {
	t.Helper()
	entries := make([]menu.SelectedChoice, 0, len(deltas))
	for i, d := range deltas {
		entries = append(entries, menu.SelectedChoice{
			GroupID:    "g",
			ChoiceID:   string(rune('a' + i)),
			Label:      "extra",
			PriceDelta: kernel.MustMoney(d),
		})
	}
	item, err := cart.NewLineItem(
		kernel.NewUUID(), "dish", "Dish", kernel.MustMoney(price), quantity, menu.NewCustomization(entries),
	)
	require.NoError(t, err)
	return item
}

func TestPricingEngine_Compute(t *testing.T) {
	engine := services.NewPricingEngine()
	discount := kernel.MustMoney("5.00")
	fee := kernel.MustMoney("3.99")
	tax := kernel.MustTaxRate("0.10")

	t.Run("reference cart", func(t *testing.T) {
		items := []cart.LineItem{lineItem(t, "15.99", 1), lineItem(t, "8.50", 2)}

		b := engine.Compute(items, discount, fee, tax)

		assert.Equal(t, "32.99", b.Subtotal.String())
		assert.Equal(t, "3.30", b.TaxAmount.String())
		assert.Equal(t, "35.28", b.Total.String())
		assert.Equal(t, "5.00", b.Discount.String())
		assert.Equal(t, "3.99", b.DeliveryFee.String())
		assert.Equal(t, 3, b.ItemCount)
	})

	t.Run("customization delta is charged per unit", func(t *testing.T) {
		items := []cart.LineItem{lineItem(t, "28.00", 2, "2.00", "1.50")}

		b := engine.Compute(items, kernel.ZeroMoney(), kernel.ZeroMoney(), kernel.TaxRate{})

		assert.Equal(t, "63.00", b.Subtotal.String())
		assert.Equal(t, "63.00", b.Total.String())
	})

	t.Run("empty cart still carries fee and discount", func(t *testing.T) {
		b := engine.Compute(nil, discount, fee, tax)

		assert.True(t, b.Subtotal.IsZero())
		assert.True(t, b.TaxAmount.IsZero())
		assert.True(t, b.Total.IsZero())
		assert.Zero(t, b.ItemCount)
	})

	t.Run("total is clamped at zero", func(t *testing.T) {
		items := []cart.LineItem{lineItem(t, "1.00", 1)}

		b := engine.Compute(items, kernel.MustMoney("50.00"), fee, tax)

		assert.True(t, b.Total.IsZero())
		assert.Equal(t, "1.00", b.Subtotal.String())
	})

	t.Run("changing the discount only changes the total", func(t *testing.T) {
		items := []cart.LineItem{lineItem(t, "15.99", 1), lineItem(t, "8.50", 2)}

		a := engine.Compute(items, kernel.ZeroMoney(), fee, tax)
		b := engine.Compute(items, discount, fee, tax)

		assert.True(t, a.Subtotal.IsEqual(b.Subtotal))
		assert.True(t, a.TaxAmount.IsEqual(b.TaxAmount))
		assert.Equal(t, "40.28", a.Total.String())
		assert.Equal(t, "35.28", b.Total.String())
	})

	t.Run("is idempotent", func(t *testing.T) {
		items := []cart.LineItem{lineItem(t, "9.99", 3, "0.01"), lineItem(t, "0.05", 7)}

		first := engine.Compute(items, discount, fee, tax)
		second := engine.Compute(items, discount, fee, tax)

		assert.Equal(t, first, second)
	})

	t.Run("policy variant matches explicit arguments", func(t *testing.T) {
		items := []cart.LineItem{lineItem(t, "12.99", 2)}
		policy := services.PricingPolicy{Discount: discount, DeliveryFee: fee, TaxRate: tax}

		assert.Equal(t, engine.Compute(items, discount, fee, tax), engine.ComputeWithPolicy(items, policy))
	})
}

func TestPricingEngine_TaxRounding(t *testing.T) {
	engine := services.NewPricingEngine()

	testCases := []struct {
		subtotal string
		rate     string
		tax      string
	}{
		{"0.05", "0.10", "0.01"},
		{"0.04", "0.10", "0.00"},
		{"10.45", "0.10", "1.05"},
		{"33.33", "0.08", "2.67"},
	}

	for _, tc := range testCases {
		t.Run(tc.subtotal+"@"+tc.rate, func(t *testing.T) {
			b := engine.Compute(
				[]cart.LineItem{lineItem(t, tc.subtotal, 1)},
				kernel.ZeroMoney(), kernel.ZeroMoney(), kernel.MustTaxRate(tc.rate),
			)

			assert.Equal(t, tc.tax, b.TaxAmount.String())
		})
	}
}
