package commands

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/metrics"
)

// AdvanceTrackingsCommandHandler drives the order tracking timer.
//
// Due-ness is decided per order from its lastAdvancedAt and the injected
// clock, so a late tick never makes an order skip a stage and tests can drive
// virtual time. An order cancelled while the tick ran is left as it is.
type AdvanceTrackingsCommandHandler struct {
	uowFactory TrackingUoWFactory
	clock      ports.Clock
	interval   time.Duration
}

// NewAdvanceTrackingsCommandHandler creates the handler. interval is the time
// an order spends on each stage.
func NewAdvanceTrackingsCommandHandler(
	uowFactory TrackingUoWFactory,
	clock ports.Clock,
	interval time.Duration,
) AdvanceTrackingsCommandHandler {
	return AdvanceTrackingsCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		interval:   interval,
	}
}

// Handle advances all due orders in one transaction and returns how many moved.
func (h *AdvanceTrackingsCommandHandler) Handle(ctx context.Context, cmd AdvanceTrackingsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TrackingRepository()
	trackings, err := repo.GetAllInProgress(ctx)
	if err != nil {
		return 0, err
	}

	now := h.clock.Now()
	advanced := make([]string, 0, len(trackings))
	for _, t := range trackings {
		if !t.DueForAdvance(now, h.interval) {
			continue
		}

		if err = t.Advance(now); err != nil {
			return 0, err
		}

		if err = repo.Update(ctx, t); err != nil {
			if errors.Is(err, ports.ErrTrackingChanged) {
				continue
			}
			return 0, err
		}
		advanced = append(advanced, t.CurrentStage().Name())
	}

	if len(advanced) == 0 {
		return 0, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, stage := range advanced {
		metrics.OrderStageTransitionsTotal.WithLabelValues(stage).Inc()
	}
	return len(advanced), nil
}
