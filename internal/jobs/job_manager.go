package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	trackingAdvanceJob *TrackingAdvanceJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(advancer TrackingAdvancer, logger *slog.Logger) *JobManager {
	return &JobManager{
		trackingAdvanceJob: NewTrackingAdvanceJob(advancer, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.trackingAdvanceJob.Start(); err != nil {
		return fmt.Errorf("failed to start tracking advance job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ticks.
func (jm *JobManager) StopAll() {
	jm.trackingAdvanceJob.Stop()
}
