package jobs

import (
	"context"
	"log/slog"
	"time"

	"shiplabel/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// draftRetention is how long an unconsumed resumption draft is kept. Long
// enough that a buyer returning from a payment redirect the next morning can
// still resume; anything older is an abandoned checkout.
const draftRetention = 24 * time.Hour

// DraftCleanupJob sweeps abandoned checkout drafts on a schedule.
// Runs hourly; each run deletes unconsumed drafts older than the retention
// window.
type DraftCleanupJob struct {
	handler commands.CleanupExpiredDraftsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDraftCleanupJob creates the scheduled draft sweep.
func NewDraftCleanupJob(handler commands.CleanupExpiredDraftsCommandHandler, logger *slog.Logger) *DraftCleanupJob {
	return &DraftCleanupJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "draft_cleanup_job"),
	}
}

// Start begins the hourly sweep.
func (j *DraftCleanupJob) Start() error {
	_, err := j.cron.AddFunc("@hourly", func() {
		ctx := context.Background()

		cmd, err := commands.NewCleanupExpiredDraftsCommand(draftRetention)
		if err != nil {
			j.logger.ErrorContext(ctx, "Draft cleanup command invalid", "error", err)
			return
		}

		deleted, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Draft cleanup job failed", "error", err)
			return
		}
		if deleted > 0 {
			j.logger.InfoContext(ctx, "Swept abandoned checkout drafts", "deleted", deleted)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Draft cleanup job started (running hourly)")
	return nil
}

// Stop stops the cleanup job.
func (j *DraftCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Draft cleanup job stopped")
}
