package commands

import (
	"errors"

	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/pkg/guard"
)

// ErrBeginPaymentCommandIsNotConstructed is returned when the command was not
// created through its constructor.
var ErrBeginPaymentCommandIsNotConstructed = errors.New(
	"BeginPaymentCommand must be created via NewBeginPaymentCommand constructor",
)

// BeginPaymentCommand represents a request to start payment for the session's
// selected rate: create a payment intent and write the resumption draft.
type BeginPaymentCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewBeginPaymentCommand creates a payment-start command for the given session.
func NewBeginPaymentCommand(sessionID kernel.UUID) (BeginPaymentCommand, error) {
	cmd := BeginPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setSessionID(sessionID); err != nil {
		return BeginPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BeginPaymentCommand) Validate() error {
	return c.guard.Validate(ErrBeginPaymentCommandIsNotConstructed)
}

// SessionID returns the checkout session identifier.
func (c BeginPaymentCommand) SessionID() kernel.UUID {
	return c.sessionID
}

func (c *BeginPaymentCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}
