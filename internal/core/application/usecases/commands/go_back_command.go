package commands

import (
	"errors"

	"shiplabel/internal/core/domain/model/checkout"
	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/pkg/guard"
)

// ErrGoBackCommandIsNotConstructed is returned when the command was not
// created through its constructor.
var ErrGoBackCommandIsNotConstructed = errors.New(
	"GoBackCommand must be created via NewGoBackCommand constructor",
)

// GoBackCommand represents backward wizard navigation to a previously
// completed step. Forward jumps are rejected by the session.
type GoBackCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	target    checkout.Step

	guard guard.ConstructorGuard
}

// NewGoBackCommand creates a backward-navigation command.
func NewGoBackCommand(sessionID kernel.UUID, target checkout.Step) (GoBackCommand, error) {
	cmd := GoBackCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setTarget(target),
	); err != nil {
		return GoBackCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GoBackCommand) Validate() error {
	return c.guard.Validate(ErrGoBackCommandIsNotConstructed)
}

// SessionID returns the checkout session identifier.
func (c GoBackCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// Target returns the step to navigate back to.
func (c GoBackCommand) Target() checkout.Step {
	return c.target
}

func (c *GoBackCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}

func (c *GoBackCommand) setTarget(target checkout.Step) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
