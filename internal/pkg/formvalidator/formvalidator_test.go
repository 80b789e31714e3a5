package formvalidator_test

import (
	"testing"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/formvalidator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Name     string `json:"name"     validate:"min=2"`
	Postcode string `json:"postcode" validate:"min=3,nospace"`
	Phone    string `json:"phone"    validate:"min=7,phone"`
	Expiry   string `json:"expiry"   validate:"omitempty,cardexpiry"`
	Agree    bool   `json:"agree"    validate:"required"`
}

var messages = formvalidator.Messages{
	"Name.min":         "Name is required.",
	"Postcode.nospace": "Postcode cannot contain spaces.",
	"Phone.phone":      "Invalid phone number format.",
}

func validForm() contactForm {
	return contactForm{
		Name:     "Ada Lovelace",
		Postcode: "SW1A1AA",
		Phone:    "+44 (20) 7946-0958",
		Expiry:   "09/27",
		Agree:    true,
	}
}

func TestValidator_ValidateFields(t *testing.T) {
	v := formvalidator.MustNew(messages)

	t.Run("valid form passes", func(t *testing.T) {
		require.NoError(t, v.ValidateFields(validForm(), "Name", "Postcode", "Phone", "Expiry", "Agree"))
	})

	t.Run("no fields means nothing to check", func(t *testing.T) {
		require.NoError(t, v.ValidateFields(contactForm{}))
	})

	t.Run("only named fields are checked", func(t *testing.T) {
		f := validForm()
		f.Phone = "x"

		require.NoError(t, v.ValidateFields(f, "Name", "Postcode"))
	})

	t.Run("reports the first failing field in the given order", func(t *testing.T) {
		f := contactForm{}

		err := v.ValidateFields(f, "Phone", "Name")

		var ve *errs.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "phone", ve.Field)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	testCases := []struct {
		name    string
		mutate  func(*contactForm)
		field   string
		message string
	}{
		{"custom message for min", func(f *contactForm) { f.Name = "A" }, "name", "Name is required."},
		{"nospace tag", func(f *contactForm) { f.Postcode = "SW1A 1AA" }, "postcode", "Postcode cannot contain spaces."},
		{"phone tag", func(f *contactForm) { f.Phone = "call me maybe" }, "phone", "Invalid phone number format."},
		{"fallback message", func(f *contactForm) { f.Expiry = "13/27" }, "expiry", "expiry is invalid"},
		{"fallback required", func(f *contactForm) { f.Agree = false }, "agree", "agree is required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := validForm()
			tc.mutate(&f)

			err := v.ValidateFields(f, "Name", "Postcode", "Phone", "Expiry", "Agree")

			var ve *errs.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
			assert.Equal(t, tc.message, ve.Message)
		})
	}
}
