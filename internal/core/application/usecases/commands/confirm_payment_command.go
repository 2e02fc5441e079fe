package commands

import (
	"errors"

	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/pkg/guard"
)

// ErrConfirmPaymentCommandIsNotConstructed is returned when the command was
// not created through its constructor.
var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand represents a request to settle the session's current
// payment intent and, on success, purchase the label.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a payment-confirmation command.
func NewConfirmPaymentCommand(sessionID kernel.UUID) (ConfirmPaymentCommand, error) {
	cmd := ConfirmPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setSessionID(sessionID); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// SessionID returns the checkout session identifier.
func (c ConfirmPaymentCommand) SessionID() kernel.UUID {
	return c.sessionID
}

func (c *ConfirmPaymentCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}
