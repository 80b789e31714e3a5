package checkout

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Step is one screen of the checkout wizard.
type Step int

const (
	// UnknownStep is the zero value and is never valid.
	UnknownStep Step = iota

	// AddressStep collects the delivery address and phone number.
	AddressStep

	// PaymentStep collects the payment method.
	PaymentStep

	// ReviewStep shows the order summary and collects card details and consent.
	ReviewStep
)

// FirstStep and LastStep bound the wizard.
const (
	FirstStep = AddressStep
	LastStep  = ReviewStep
)

func getStepStrings() map[Step]string {
	return map[Step]string{
		UnknownStep: "Unknown",
		AddressStep: "Address",
		PaymentStep: "Payment",
		ReviewStep:  "Review",
	}
}

// getStepFields lists the Form fields each step owns, in display order.
// The order decides which error is reported first.
func getStepFields() map[Step][]string {
	//nolint:exhaustive // UnknownStep owns nothing
	return map[Step][]string{
		AddressStep: {"FullName", "AddressLine1", "City", "PostalCode", "Country", "PhoneNumber"},
		PaymentStep: {"PaymentMethod"},
		ReviewStep:  {"CardName", "CardNumber", "CardExpiry", "CardCVC", "AgreeToTerms"},
	}
}

// Validate rejects values outside AddressStep..ReviewStep.
func (s Step) Validate() error {
	if s < FirstStep || s > LastStep {
		return errs.NewValueIsOutOfRangeError("step", int(s), int(FirstStep), int(LastStep))
	}
	return nil
}

func (s Step) String() string {
	if str, ok := getStepStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Number returns the 1-based position shown to the customer.
func (s Step) Number() int {
	return int(s)
}

// Fields returns the Form struct fields owned by the step.
func (s Step) Fields() []string {
	fields := getStepFields()[s]
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

// Next returns the following step or an error from ReviewStep.
func (s Step) Next() (Step, error) {
	if err := s.Validate(); err != nil {
		return UnknownStep, err
	}
	if s == LastStep {
		return s, ErrNoNextStep
	}
	return s + 1, nil
}

// Previous returns the preceding step. From AddressStep it stays put.
func (s Step) Previous() Step {
	if s <= FirstStep {
		return FirstStep
	}
	return s - 1
}

// StepFromNumber converts the 1-based number used on the wire.
func StepFromNumber(n int) (Step, error) {
	s := Step(n)
	if err := s.Validate(); err != nil {
		return UnknownStep, fmt.Errorf("step number %d: %w", n, err)
	}
	return s, nil
}

// submitFields is every field checked before an order may be placed.
func submitFields() []string {
	out := make([]string, 0, 12)
	for s := FirstStep; s <= LastStep; s++ {
		out = append(out, getStepFields()[s]...)
	}
	return out
}
