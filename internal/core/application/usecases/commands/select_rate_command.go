package commands

import (
	"errors"

	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/pkg/errs"
	"shiplabel/internal/pkg/guard"
)

// ErrSelectRateCommandIsNotConstructed is returned when the command was not
// created through its constructor.
var ErrSelectRateCommandIsNotConstructed = errors.New(
	"SelectRateCommand must be created via NewSelectRateCommand constructor",
)

// SelectRateCommand represents the buyer choosing one rate from the
// currently displayed list.
type SelectRateCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	rateID    string

	guard guard.ConstructorGuard
}

// NewSelectRateCommand creates a rate-selection command.
func NewSelectRateCommand(sessionID kernel.UUID, rateID string) (SelectRateCommand, error) {
	cmd := SelectRateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setRateID(rateID),
	); err != nil {
		return SelectRateCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SelectRateCommand) Validate() error {
	return c.guard.Validate(ErrSelectRateCommandIsNotConstructed)
}

// SessionID returns the checkout session identifier.
func (c SelectRateCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// RateID returns the provider identifier of the chosen rate.
func (c SelectRateCommand) RateID() string {
	return c.rateID
}

func (c *SelectRateCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}

func (c *SelectRateCommand) setRateID(rateID string) error {
	if rateID == "" {
		return errs.NewValueIsRequiredError("rate id")
	}

	c.rateID = rateID
	return nil
}
