package commands_test

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/menu"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func testPolicy() services.PricingPolicy {
	return services.PricingPolicy{
		Discount:    kernel.MustMoney("5.00"),
		DeliveryFee: kernel.MustMoney("3.99"),
		TaxRate:     kernel.MustTaxRate("0.10"),
	}
}

func plainDish(t *testing.T) menu.Dish {
	t.Helper()
	d, err := menu.NewDish("d1", "Crispy Calamari Rings", kernel.MustMoney("12.99"))
	require.NoError(t, err)
	return d
}

func steakDish(t *testing.T) menu.Dish {
	t.Helper()
	rare, _ := menu.NewChoice("rare", "Rare", kernel.ZeroMoney())
	medium, _ := menu.NewChoice("medium", "Medium", kernel.ZeroMoney())
	doneness, err := menu.NewCustomizationGroup("c1", "Steak Doneness", menu.SingleSelect, true, rare, medium)
	require.NoError(t, err)
	d, err := menu.NewDish("d3", "Ribeye Steak", kernel.MustMoney("28.00"), doneness)
	require.NoError(t, err)
	return d
}

func cartWithItem(t *testing.T) *cart.Cart {
	t.Helper()
	c, err := cart.NewCart(kernel.NewUUID())
	require.NoError(t, err)
	_, err = c.AddItem(plainDish(t), 2, menu.Customization{})
	require.NoError(t, err)
	return c
}

func newFormValidator(t *testing.T) checkout.FormValidator {
	t.Helper()
	v, err := checkout.NewFormValidator()
	require.NoError(t, err)
	return v
}

func reviewForm(agree bool) checkout.Form {
	return checkout.Form{
		FullName:      "Jane Doe",
		AddressLine1:  "42 Wallaby Way",
		City:          "Sydney",
		PostalCode:    "2000",
		Country:       "AU",
		PhoneNumber:   "+61 2 9999 0000",
		PaymentMethod: checkout.PayPal,
		AgreeToTerms:  agree,
	}
}

func wizardOnReview(t *testing.T, cartID kernel.UUID, form checkout.Form) *checkout.Wizard {
	t.Helper()
	v := newFormValidator(t)
	w, err := checkout.NewWizard(cartID)
	require.NoError(t, err)
	require.NoError(t, w.Edit(form))
	require.NoError(t, w.Next(v))
	require.NoError(t, w.Next(v))
	return w
}

func newTrackingAt(t *testing.T, placedAt time.Time) *tracking.Tracking {
	t.Helper()
	tr, err := tracking.NewTracking(
		kernel.NewUUID(),
		tracking.DefaultStages(),
		[]tracking.Item{{Name: "Classic Tiramisu", Quantity: 1}},
		kernel.MustMoney("17.89"),
		"42 Wallaby Way, Sydney 2000, AU",
		placedAt,
	)
	require.NoError(t, err)
	return tr
}
