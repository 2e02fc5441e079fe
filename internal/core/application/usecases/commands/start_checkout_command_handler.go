package commands

import (
	"context"

	"shiplabel/internal/core/domain/model/checkout"
	"shiplabel/internal/core/ports"
)

// StartCheckoutCommandHandler opens new checkout sessions.
// A session lives in the session store for the duration of the purchase and
// is destroyed once the checkout completes.
type StartCheckoutCommandHandler struct {
	sessions ports.SessionStore
}

// NewStartCheckoutCommandHandler creates a handler for opening checkout sessions.
func NewStartCheckoutCommandHandler(sessions ports.SessionStore) StartCheckoutCommandHandler {
	return StartCheckoutCommandHandler{sessions: sessions}
}

// Handle creates the session at the address step and stores it.
func (h *StartCheckoutCommandHandler) Handle(ctx context.Context, cmd StartCheckoutCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	session, err := checkout.NewSession(cmd.SessionID(), cmd.BuyerID())
	if err != nil {
		return err
	}

	return h.sessions.Add(ctx, session)
}
