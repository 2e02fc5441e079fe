// Package jobs provides scheduled background tasks for the checkout service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance the request path never performs.
//
// # Available Jobs
//
// 1. DraftCleanupJob - Runs hourly to delete unconsumed resumption drafts
// older than the retention window. Drafts exist so a buyer can resume a
// checkout after an external payment redirect; one that nobody returned to
// within a day belongs to an abandoned checkout and only accumulates storage.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(cleanupHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick; the job never stops
// itself on error.
package jobs
