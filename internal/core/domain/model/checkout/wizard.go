package checkout

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
)

var (
	// ErrWizardIsNotConstructed is returned when a Wizard was not created through NewWizard.
	ErrWizardIsNotConstructed = errors.New("Wizard must be created via NewWizard constructor")

	// ErrNoNextStep is returned by Next on the Review step.
	ErrNoNextStep = errors.New("review is the last checkout step")

	// ErrWizardIsLocked is returned for edits and navigation while an order is
	// being placed or after it was placed.
	ErrWizardIsLocked = errors.New("checkout is locked while the order is submitting or after it was placed")

	// ErrSubmitUnavailable is returned by BeginSubmit when CanSubmit is false.
	// The wizard is left untouched.
	ErrSubmitUnavailable = errors.New("order cannot be submitted yet")

	// ErrNotSubmitting is returned when completing or failing a submission that was never begun.
	ErrNotSubmitting = errors.New("no submission is in progress")

	errNotOnReview = errors.New("checkout is not on the review step")
)

// Wizard is the aggregate root for one checkout session. It is keyed by the
// cart it checks out.
//
// Wizard follows these invariants:
//   - step is always one of AddressStep, PaymentStep, ReviewStep
//   - forward moves validate exactly the current step's fields
//   - backward moves never validate and never clear form data
//   - submission may only start from ReviewStep with a fully valid form
//   - once Succeeded, nothing changes anymore
type Wizard struct {
	cartID     kernel.UUID
	step       Step
	form       Form
	submission SubmissionState
	lastError  string
	orderID    *kernel.UUID

	isConstructed bool
}

// NewWizard creates a wizard on the Address step with an empty form.
func NewWizard(cartID kernel.UUID) (*Wizard, error) {
	if err := cartID.Validate(); err != nil {
		return nil, err
	}

	return &Wizard{
		cartID:        cartID,
		step:          FirstStep,
		submission:    Idle,
		isConstructed: true,
	}, nil
}

// Validate ensures the wizard was created through NewWizard.
func (w *Wizard) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWizardIsNotConstructed
	}
	return nil
}

// CartID returns the cart being checked out.
func (w *Wizard) CartID() kernel.UUID {
	return w.cartID
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	return w.step
}

// Form returns a copy of the form values.
func (w *Wizard) Form() Form {
	return w.form
}

// Submission returns the submission sub-state.
func (w *Wizard) Submission() SubmissionState {
	return w.submission
}

// LastError is the failure reason of the last submission attempt, if any.
func (w *Wizard) LastError() string {
	return w.lastError
}

// OrderID is set once the submission succeeded.
func (w *Wizard) OrderID() *kernel.UUID {
	return w.orderID
}

// Edit replaces the form values. The step does not change.
func (w *Wizard) Edit(form Form) error {
	if w.submission.IsLocked() {
		return ErrWizardIsLocked
	}
	w.form = form
	return nil
}

// Next validates the fields owned by the current step and, when they pass,
// moves one step forward. On failure the step is unchanged and the
// *errs.ValidationError for the first failing field is returned.
func (w *Wizard) Next(validator FormValidator) error {
	if w.submission.IsLocked() {
		return ErrWizardIsLocked
	}

	next, err := w.step.Next()
	if err != nil {
		return err
	}

	if err = validator.ValidateFields(w.form, w.step.Fields()...); err != nil {
		return err
	}

	w.step = next
	return nil
}

// Back moves one step backward without validating. It is a no-op on the first step.
func (w *Wizard) Back() error {
	if w.submission.IsLocked() {
		return ErrWizardIsLocked
	}
	w.step = w.step.Previous()
	return nil
}

// CanSubmit reports whether BeginSubmit would succeed: on ReviewStep, no
// placement running or done, and every field of every step valid. That covers
// consent, a payment method and, for credit cards, the card details.
func (w *Wizard) CanSubmit(validator FormValidator) bool {
	return w.submitError(validator) == nil
}

// SubmitError explains why CanSubmit is false, or returns nil.
func (w *Wizard) SubmitError(validator FormValidator) error {
	return w.submitError(validator)
}

// BeginSubmit enters Submitting. When CanSubmit is false it returns
// ErrSubmitUnavailable joined with the reason and changes nothing, so a
// repeated click while Submitting is harmless.
func (w *Wizard) BeginSubmit(validator FormValidator) error {
	if err := w.submitError(validator); err != nil {
		return errors.Join(ErrSubmitUnavailable, err)
	}

	w.submission = Submitting
	w.lastError = ""
	return nil
}

// CompleteSubmit records the placed order and enters Succeeded.
func (w *Wizard) CompleteSubmit(orderID kernel.UUID) error {
	if w.submission != Submitting {
		return ErrNotSubmitting
	}
	if err := orderID.Validate(); err != nil {
		return err
	}

	w.submission = Succeeded
	w.orderID = &orderID
	return nil
}

// FailSubmit records the failure reason and enters Failed. The customer stays
// on ReviewStep and may retry.
func (w *Wizard) FailSubmit(reason string) error {
	if w.submission != Submitting {
		return ErrNotSubmitting
	}

	w.submission = Failed
	w.lastError = reason
	return nil
}

// Clone returns a copy that shares nothing mutable with w.
func (w *Wizard) Clone() *Wizard {
	clone := *w
	if w.orderID != nil {
		id := *w.orderID
		clone.orderID = &id
	}
	return &clone
}

func (w *Wizard) submitError(validator FormValidator) error {
	if w.submission.IsLocked() {
		return ErrWizardIsLocked
	}
	if w.step != ReviewStep {
		return errNotOnReview
	}
	return validator.ValidateFields(w.form, submitFields()...)
}
