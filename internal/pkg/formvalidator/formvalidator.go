// Package formvalidator wraps go-playground/validator with the storefront's
// custom tags and turns tag failures into field-scoped errs.ValidationError
// values carrying human readable messages.
package formvalidator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"storefront/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern  = regexp.MustCompile(`^\+?[0-9\s\-()]+$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
)

// Messages maps "StructField.tag" (or just "StructField") to a display message.
type Messages map[string]string

// Validator validates a subset of a struct's fields in a caller-defined order.
type Validator struct {
	validate *validator.Validate
	messages Messages
}

// New builds a Validator with the custom tags registered:
//   - nospace: string contains no whitespace
//   - phone: digits, spaces, dashes and parentheses with an optional leading +
//   - cardexpiry: MM/YY
func New(messages Messages) (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := errors.Join(
		v.RegisterValidation("nospace", func(fl validator.FieldLevel) bool {
			return !strings.ContainsAny(fl.Field().String(), " \t\r\n")
		}),
		v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		}),
		v.RegisterValidation("cardexpiry", func(fl validator.FieldLevel) bool {
			return expiryPattern.MatchString(fl.Field().String())
		}),
	); err != nil {
		return nil, err
	}

	return &Validator{validate: v, messages: messages}, nil
}

// MustNew is New for static configurations. It panics on registration errors.
func MustNew(messages Messages) *Validator {
	v, err := New(messages)
	if err != nil {
		panic(err)
	}
	return v
}

// ValidateFields validates only the named struct fields of s. When several
// fail, the error describes the first one in fields order.
//
// Returns nil or an *errs.ValidationError whose Field is the json name.
func (v *Validator) ValidateFields(s any, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}

	err := v.validate.StructPartial(s, fields...)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errs.NewValueIsInvalidErrorWithCause("form", err)
	}

	byField := make(map[string]validator.FieldError, len(validationErrors))
	for _, fe := range validationErrors {
		if _, seen := byField[fe.StructField()]; !seen {
			byField[fe.StructField()] = fe
		}
	}

	for _, name := range fields {
		if fe, ok := byField[name]; ok {
			return errs.NewValidationError(fe.Field(), v.message(fe))
		}
	}

	fe := validationErrors[0]
	return errs.NewValidationError(fe.Field(), v.message(fe))
}

func (v *Validator) message(fe validator.FieldError) string {
	if msg, ok := v.messages[fe.StructField()+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := v.messages[fe.StructField()]; ok {
		return msg
	}

	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
