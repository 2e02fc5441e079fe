package commands

import (
	"context"

	"shiplabel/internal/core/ports"
)

// SelectRateCommandHandler marks one of the fetched rates as selected.
// Selecting a rate different from the previous one invalidates any payment
// intent priced from the old selection.
type SelectRateCommandHandler struct {
	sessions ports.SessionStore
}

// NewSelectRateCommandHandler creates the rate-selection handler.
func NewSelectRateCommandHandler(sessions ports.SessionStore) SelectRateCommandHandler {
	return SelectRateCommandHandler{sessions: sessions}
}

// Handle processes the rate selection.
func (h *SelectRateCommandHandler) Handle(ctx context.Context, cmd SelectRateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	session, err := h.sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	return session.SelectRate(cmd.RateID())
}
