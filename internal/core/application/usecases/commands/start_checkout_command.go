package commands

import (
	"errors"

	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/pkg/guard"
)

// ErrStartCheckoutCommandIsNotConstructed is returned when the command was not
// created through its constructor.
var ErrStartCheckoutCommandIsNotConstructed = errors.New(
	"StartCheckoutCommand must be created via NewStartCheckoutCommand constructor",
)

// StartCheckoutCommand represents a request to open a new label-purchase
// checkout session for a buyer. The session starts at the address step.
//
// Example:
//
//	sessionID := kernel.NewUUID()
//	cmd, err := NewStartCheckoutCommand(sessionID, buyerID)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout data: %w", err)
//	}
//
//	handler := NewStartCheckoutCommandHandler(sessions)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to start checkout: %w", err)
//	}
type StartCheckoutCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	buyerID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartCheckoutCommand creates a command to open a checkout session.
// Both identifiers must be valid UUIDs.
func NewStartCheckoutCommand(sessionID, buyerID kernel.UUID) (StartCheckoutCommand, error) {
	cmd := StartCheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setBuyerID(buyerID),
	); err != nil {
		return StartCheckoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartCheckoutCommand) Validate() error {
	return c.guard.Validate(ErrStartCheckoutCommandIsNotConstructed)
}

// SessionID returns the identifier the new session will carry.
func (c StartCheckoutCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// BuyerID returns the purchasing user's identifier.
func (c StartCheckoutCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

func (c *StartCheckoutCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}

func (c *StartCheckoutCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	c.buyerID = buyerID
	return nil
}
