package commands

import (
	"context"

	"shiplabel/internal/core/ports"
)

// GoBackCommandHandler navigates a session back to a completed step.
type GoBackCommandHandler struct {
	sessions ports.SessionStore
}

// NewGoBackCommandHandler creates the backward-navigation handler.
func NewGoBackCommandHandler(sessions ports.SessionStore) GoBackCommandHandler {
	return GoBackCommandHandler{sessions: sessions}
}

// Handle processes the navigation.
func (h *GoBackCommandHandler) Handle(ctx context.Context, cmd GoBackCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	session, err := h.sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	return session.Back(cmd.Target())
}
