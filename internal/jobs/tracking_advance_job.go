package jobs

import (
	"context"
	"log/slog"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const trackingAdvanceJobName = "tracking_advance"

// TrackingAdvancer moves due orders one stage forward.
type TrackingAdvancer interface {
	Handle(ctx context.Context, cmd commands.AdvanceTrackingsCommand) (int, error)
}

// TrackingAdvanceJob ticks the order trackers every second. The handler
// decides which orders are due, so the tick rate only bounds the latency.
// A tick still running when the next one fires is skipped.
type TrackingAdvanceJob struct {
	handler TrackingAdvancer
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewTrackingAdvanceJob creates the job.
func NewTrackingAdvanceJob(handler TrackingAdvancer, logger *slog.Logger) *TrackingAdvanceJob {
	return &TrackingAdvanceJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "tracking_advance_job"),
	}
}

// Start schedules the job to run every second.
func (j *TrackingAdvanceJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		j.runOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tracking advance job started (running every second)")
	return nil
}

// Stop unschedules the job and waits for a running tick to finish.
func (j *TrackingAdvanceJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Tracking advance job stopped")
}

func (j *TrackingAdvanceJob) runOnce(ctx context.Context) {
	advanced, err := j.handler.Handle(ctx, commands.NewAdvanceTrackingsCommand())
	metrics.JobRunsTotal.WithLabelValues(trackingAdvanceJobName, metrics.Result(err)).Inc()
	if err != nil {
		j.logger.ErrorContext(ctx, "Tracking advance job failed", "error", err)
		return
	}
	if advanced > 0 {
		j.logger.DebugContext(ctx, "Orders advanced", "count", advanced)
	}
}
