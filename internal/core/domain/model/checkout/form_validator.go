package checkout

import "storefront/internal/pkg/formvalidator"

// FormValidator checks a subset of Form fields.
//
// Implementations return nil when every named field is valid, or an
// *errs.ValidationError describing the first failing field in the given order.
type FormValidator interface {
	ValidateFields(form Form, fields ...string) error
}

type tagValidator struct {
	v *formvalidator.Validator
}

// NewFormValidator returns the FormValidator driven by Form's struct tags.
func NewFormValidator() (FormValidator, error) {
	v, err := formvalidator.New(getFormMessages())
	if err != nil {
		return nil, err
	}
	return tagValidator{v: v}, nil
}

func (t tagValidator) ValidateFields(form Form, fields ...string) error {
	return t.v.ValidateFields(form, fields...)
}
