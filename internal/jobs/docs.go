// Package jobs provides scheduled background tasks for the storefront.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds precision).
//
// # Available Jobs
//
// 1. TrackingAdvanceJob - Runs every second and moves each placed order whose
// stage interval has elapsed one stage closer to delivery
//
// # Usage
//
//	jobManager := jobs.NewJobManager(&advanceTrackingsHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failed ticks are logged and counted; the next tick retries. StopAll waits
// for a running tick, so no work outlives shutdown.
package jobs
