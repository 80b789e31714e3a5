package commands

import (
	"context"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
)

// EditCheckoutFormCommandHandler stores new form values.
type EditCheckoutFormCommandHandler struct {
	checkouts ports.CheckoutRepository
}

// NewEditCheckoutFormCommandHandler creates the handler.
func NewEditCheckoutFormCommandHandler(checkouts ports.CheckoutRepository) EditCheckoutFormCommandHandler {
	return EditCheckoutFormCommandHandler{checkouts: checkouts}
}

// Handle returns checkout.ErrWizardIsLocked while an order is being placed.
func (h *EditCheckoutFormCommandHandler) Handle(ctx context.Context, cmd EditCheckoutFormCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateWizard(ctx, h.checkouts, cmd.CartID(), func(w *checkout.Wizard) error {
		return w.Edit(cmd.Form())
	})
}

// NextCheckoutStepCommandHandler moves the wizard forward.
type NextCheckoutStepCommandHandler struct {
	checkouts ports.CheckoutRepository
	validator checkout.FormValidator
}

// NewNextCheckoutStepCommandHandler creates the handler.
func NewNextCheckoutStepCommandHandler(
	checkouts ports.CheckoutRepository,
	validator checkout.FormValidator,
) NextCheckoutStepCommandHandler {
	return NextCheckoutStepCommandHandler{checkouts: checkouts, validator: validator}
}

// Handle returns the *errs.ValidationError of the first invalid field and
// leaves the step unchanged when the current step does not validate.
func (h *NextCheckoutStepCommandHandler) Handle(ctx context.Context, cmd NextCheckoutStepCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateWizard(ctx, h.checkouts, cmd.CartID(), func(w *checkout.Wizard) error {
		return w.Next(h.validator)
	})
}

// PreviousCheckoutStepCommandHandler moves the wizard back.
type PreviousCheckoutStepCommandHandler struct {
	checkouts ports.CheckoutRepository
}

// NewPreviousCheckoutStepCommandHandler creates the handler.
func NewPreviousCheckoutStepCommandHandler(checkouts ports.CheckoutRepository) PreviousCheckoutStepCommandHandler {
	return PreviousCheckoutStepCommandHandler{checkouts: checkouts}
}

// Handle never validates.
func (h *PreviousCheckoutStepCommandHandler) Handle(ctx context.Context, cmd PreviousCheckoutStepCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateWizard(ctx, h.checkouts, cmd.CartID(), func(w *checkout.Wizard) error {
		return w.Back()
	})
}

// mutateWizard loads the wizard, applies fn and stores the result. The store
// refuses the write when another request locked the wizard in the meantime.
func mutateWizard(
	ctx context.Context,
	checkouts ports.CheckoutRepository,
	cartID kernel.UUID,
	fn func(w *checkout.Wizard) error,
) error {
	w, err := checkouts.Get(ctx, cartID)
	if err != nil {
		return err
	}

	if err = fn(w); err != nil {
		return err
	}

	stored, err := checkouts.UpdateIf(ctx, w, func(current *checkout.Wizard) bool {
		return !current.Submission().IsLocked()
	})
	if err != nil {
		return err
	}
	if !stored {
		return checkout.ErrWizardIsLocked
	}
	return nil
}
