package commands

import (
	"context"
	"time"
)

// CleanupExpiredDraftsCommandHandler sweeps abandoned resumption drafts.
// Intended to run on a schedule; a consumed draft is deleted by the purchase
// itself, so only unconsumed leftovers are ever swept.
type CleanupExpiredDraftsCommandHandler struct {
	uowFactory DraftUoWFactory
}

// NewCleanupExpiredDraftsCommandHandler creates the draft cleanup handler.
func NewCleanupExpiredDraftsCommandHandler(uowFactory DraftUoWFactory) CleanupExpiredDraftsCommandHandler {
	return CleanupExpiredDraftsCommandHandler{uowFactory: uowFactory}
}

// Handle deletes drafts created before the retention cutoff and reports how
// many were removed.
func (h *CleanupExpiredDraftsCommandHandler) Handle(
	ctx context.Context,
	cmd CleanupExpiredDraftsCommand,
) (int64, error) {
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

	cutoff := time.Now().UTC().Add(-cmd.Retention())
	deleted, err := uow.DraftRepository().DeleteExpired(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	return deleted, uow.Commit(ctx)
}
