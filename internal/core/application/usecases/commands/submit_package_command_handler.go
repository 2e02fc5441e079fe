package commands

import (
	"context"

	"shiplabel/internal/core/ports"
)

// SubmitPackageCommandHandler stores the package draft on the session.
// Changing the package discards any previously fetched rates and selection;
// resubmitting identical details keeps them.
type SubmitPackageCommandHandler struct {
	sessions ports.SessionStore
}

// NewSubmitPackageCommandHandler creates the package-step handler.
func NewSubmitPackageCommandHandler(sessions ports.SessionStore) SubmitPackageCommandHandler {
	return SubmitPackageCommandHandler{sessions: sessions}
}

// Handle processes the package submission.
func (h *SubmitPackageCommandHandler) Handle(ctx context.Context, cmd SubmitPackageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	session, err := h.sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	return session.SetParcel(cmd.Parcel())
}
