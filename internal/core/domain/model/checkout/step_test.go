package checkout_test

import (
	"testing"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep(t *testing.T) {
	t.Run("Next walks forward and stops at review", func(t *testing.T) {
		s, err := checkout.AddressStep.Next()
		require.NoError(t, err)
		assert.Equal(t, checkout.PaymentStep, s)

		s, err = s.Next()
		require.NoError(t, err)
		assert.Equal(t, checkout.ReviewStep, s)

		_, err = s.Next()
		require.ErrorIs(t, err, checkout.ErrNoNextStep)
	})

	t.Run("Previous never leaves the first step", func(t *testing.T) {
		assert.Equal(t, checkout.PaymentStep, checkout.ReviewStep.Previous())
		assert.Equal(t, checkout.AddressStep, checkout.AddressStep.Previous())
	})

	t.Run("each step owns its fields", func(t *testing.T) {
		assert.Equal(t,
			[]string{"FullName", "AddressLine1", "City", "PostalCode", "Country", "PhoneNumber"},
			checkout.AddressStep.Fields())
		assert.Equal(t, []string{"PaymentMethod"}, checkout.PaymentStep.Fields())
		assert.Contains(t, checkout.ReviewStep.Fields(), "AgreeToTerms")
		assert.Empty(t, checkout.UnknownStep.Fields())
	})

	t.Run("StepFromNumber", func(t *testing.T) {
		s, err := checkout.StepFromNumber(2)
		require.NoError(t, err)
		assert.Equal(t, "Payment", s.String())

		_, err = checkout.StepFromNumber(4)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
