package commands

import (
	"errors"

	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/pkg/guard"
)

// ErrFetchRatesCommandIsNotConstructed is returned when the command was not
// created through its constructor.
var ErrFetchRatesCommandIsNotConstructed = errors.New(
	"FetchRatesCommand must be created via NewFetchRatesCommand constructor",
)

// FetchRatesCommand represents a request to shop carrier rates for the
// session's current addresses and package details.
type FetchRatesCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFetchRatesCommand creates a rate-shopping command for the given session.
func NewFetchRatesCommand(sessionID kernel.UUID) (FetchRatesCommand, error) {
	cmd := FetchRatesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setSessionID(sessionID); err != nil {
		return FetchRatesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FetchRatesCommand) Validate() error {
	return c.guard.Validate(ErrFetchRatesCommandIsNotConstructed)
}

// SessionID returns the checkout session identifier.
func (c FetchRatesCommand) SessionID() kernel.UUID {
	return c.sessionID
}

func (c *FetchRatesCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}
