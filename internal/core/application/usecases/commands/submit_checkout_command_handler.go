package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/metrics"
)

// SubmitFailedMessage is what the customer sees when placement failed.
const SubmitFailedMessage = "We could not place your order. Please try again."

// SubmitCheckoutCommandHandler turns a reviewed checkout into a placed order.
//
// The wizard is stored as Submitting before the order is written, so a
// concurrent second submit is rejected with checkout.ErrSubmitUnavailable.
// The order is built from a cart snapshot taken after that point. Placement
// runs in a unit of work behind a circuit breaker. On success the wizard
// records the order id and the ordered lines leave the cart; lines added while
// the order was placed stay. On failure the wizard moves to Failed and keeps
// the cart for a retry.
type SubmitCheckoutCommandHandler struct {
	carts      ports.CartRepository
	checkouts  ports.CheckoutRepository
	validator  checkout.FormValidator
	uowFactory TrackingUoWFactory
	breaker    Breaker
	pricing    services.PricingEngine
	policy     services.PricingPolicy
	clock      ports.Clock
	notifier   ports.CartNotifier
	logger     *slog.Logger
}

// NewSubmitCheckoutCommandHandler creates the handler.
func NewSubmitCheckoutCommandHandler(
	carts ports.CartRepository,
	checkouts ports.CheckoutRepository,
	validator checkout.FormValidator,
	uowFactory TrackingUoWFactory,
	breaker Breaker,
	policy services.PricingPolicy,
	clock ports.Clock,
	notifier ports.CartNotifier,
	logger *slog.Logger,
) SubmitCheckoutCommandHandler {
	return SubmitCheckoutCommandHandler{
		carts:      carts,
		checkouts:  checkouts,
		validator:  validator,
		uowFactory: uowFactory,
		breaker:    breaker,
		pricing:    services.NewPricingEngine(),
		policy:     policy,
		clock:      clock,
		notifier:   notifier,
		logger:     logger.With("component", "submit-checkout"),
	}
}

// Handle returns the id of the placed order.
func (h *SubmitCheckoutCommandHandler) Handle(ctx context.Context, cmd SubmitCheckoutCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	c, err := h.carts.Get(ctx, cmd.CartID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if c.IsEmpty() {
		metrics.CheckoutSubmissionsTotal.WithLabelValues("rejected").Inc()
		return kernel.UUID{}, ErrCartIsEmpty
	}

	w, err := h.beginSubmit(ctx, cmd.CartID())
	if err != nil {
		metrics.CheckoutSubmissionsTotal.WithLabelValues("rejected").Inc()
		return kernel.UUID{}, err
	}

	ordered, err := h.carts.Get(ctx, cmd.CartID())
	if err == nil && ordered.IsEmpty() {
		err = ErrCartIsEmpty
	}
	if err != nil {
		metrics.CheckoutSubmissionsTotal.WithLabelValues("rejected").Inc()
		return kernel.UUID{}, h.abortSubmit(ctx, w, SubmitFailedMessage, err)
	}

	orderID := kernel.NewUUID()
	placeErr := h.breaker.Execute(ctx, func(ctx context.Context) error {
		return h.placeOrder(ctx, orderID, ordered, w.Form())
	})
	if placeErr != nil {
		h.logger.ErrorContext(ctx, "Order placement failed", "cartId", cmd.CartID().String(), "error", placeErr)
		metrics.CheckoutSubmissionsTotal.WithLabelValues("failed").Inc()
		return kernel.UUID{}, h.abortSubmit(ctx, w, SubmitFailedMessage, fmt.Errorf("place order: %w", placeErr))
	}

	if err = w.CompleteSubmit(orderID); err != nil {
		return kernel.UUID{}, err
	}
	if err = h.checkouts.Update(ctx, w); err != nil {
		return kernel.UUID{}, err
	}
	metrics.CheckoutSubmissionsTotal.WithLabelValues("succeeded").Inc()
	h.logger.InfoContext(ctx, "Order placed", "cartId", cmd.CartID().String(), "orderId", orderID.String())

	if err = h.removeOrderedLines(ctx, ordered); err != nil {
		h.logger.ErrorContext(ctx, "Ordered lines stay in cart", "cartId", cmd.CartID().String(), "error", err)
	}

	return orderID, nil
}

// abortSubmit moves the wizard to Failed so the customer can retry and
// returns cause.
func (h *SubmitCheckoutCommandHandler) abortSubmit(
	ctx context.Context,
	w *checkout.Wizard,
	reason string,
	cause error,
) error {
	if err := w.FailSubmit(reason); err != nil {
		return errors.Join(cause, err)
	}
	if err := h.checkouts.Update(ctx, w); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

// removeOrderedLines clears the cart when it is still the ordered snapshot.
// Otherwise it deducts only what was ordered.
func (h *SubmitCheckoutCommandHandler) removeOrderedLines(ctx context.Context, ordered *cart.Cart) error {
	lines := ordered.Snapshot()
	c, changed, err := mutateCart(ctx, h.carts, ordered.ID(), func(c *cart.Cart) error {
		if c.Version() == ordered.Version() {
			c.Clear()
			return nil
		}
		c.Deduct(lines)
		return nil
	})
	if err != nil || !changed {
		return err
	}

	metrics.CartMutationsTotal.WithLabelValues("clear").Inc()
	notifyCartChanged(ctx, h.notifier, c)
	return nil
}

func (h *SubmitCheckoutCommandHandler) beginSubmit(ctx context.Context, cartID kernel.UUID) (*checkout.Wizard, error) {
	w, err := h.checkouts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if err = w.BeginSubmit(h.validator); err != nil {
		return nil, err
	}

	stored, err := h.checkouts.UpdateIf(ctx, w, func(current *checkout.Wizard) bool {
		return !current.Submission().IsLocked()
	})
	if err != nil {
		return nil, err
	}
	if !stored {
		return nil, checkout.ErrSubmitUnavailable
	}

	return w, nil
}

func (h *SubmitCheckoutCommandHandler) placeOrder(
	ctx context.Context,
	orderID kernel.UUID,
	c *cart.Cart,
	form checkout.Form,
) error {
	lines := c.Snapshot()
	breakdown := h.pricing.ComputeWithPolicy(lines, h.policy)

	items := make([]tracking.Item, 0, len(lines))
	for _, line := range lines {
		items = append(items, tracking.Item{
			Name:           line.Name(),
			Quantity:       line.Quantity(),
			Customizations: line.Customization().Labels(),
		})
	}

	t, err := tracking.NewTracking(
		orderID, tracking.DefaultStages(), items, breakdown.Total, form.DeliveryAddress(), h.clock.Now(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.TrackingRepository().Add(ctx, t); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
