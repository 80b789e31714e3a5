package commands

import (
	"context"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/metrics"
)

// CancelOrderCommandHandler cancels placed orders.
type CancelOrderCommandHandler struct {
	uowFactory TrackingUoWFactory
	clock      ports.Clock
}

// NewCancelOrderCommandHandler creates the handler.
func NewCancelOrderCommandHandler(uowFactory TrackingUoWFactory, clock ports.Clock) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns errs.ObjectNotFoundError for unknown orders and
// tracking.ErrTrackingIsTerminal for delivered or already cancelled ones.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TrackingRepository()
	t, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = t.Cancel(h.clock.Now(), cmd.Reason()); err != nil {
		return err
	}

	if err = repo.Update(ctx, t); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.OrdersCancelledTotal.Inc()
	return nil
}
