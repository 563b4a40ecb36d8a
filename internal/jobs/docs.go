// Package jobs provides scheduled background tasks for field-service job
// reconciliation.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. ReconciliationJob - Runs the drift scan once a day and on demand
// 2. ColumnRepairJob - Optionally swaps zone/status values stored in each other's column, once a day
//
// # Usage
//
// Jobs are managed through JobManager:
//
//	reconciliation, err := jobs.NewReconciliationJob(driftScanHandler, kernel.MustTimeOfDay(2, 0), loc, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	jobManager := jobs.NewJobManager(reconciliation, nil)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both jobs fire at a fixed wall-clock time in the configured location. The
// reconciliation job returns a Handle from Start; Stop takes that handle and
// removes the registration. Starting twice returns the live handle.
//
// # Run lock
//
// Scheduled and on-demand reconciliation passes share one lock. An on-demand
// run that finds a pass active fails with ErrRunInProgress; a scheduled fire
// that finds one active is skipped and logged.
package jobs
