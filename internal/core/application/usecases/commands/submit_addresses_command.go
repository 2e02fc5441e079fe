package commands

import (
	"errors"

	"shiplabel/internal/core/domain/model/address"
	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/pkg/guard"
)

// ErrSubmitAddressesCommandIsNotConstructed is returned when the command was
// not created through its constructor.
var ErrSubmitAddressesCommandIsNotConstructed = errors.New(
	"SubmitAddressesCommand must be created via NewSubmitAddressesCommand constructor",
)

// SubmitAddressesCommand represents the address-step submission: the origin
// and destination drafts the buyer entered, to be carrier-validated together.
type SubmitAddressesCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	from      address.Address
	to        address.Address

	guard guard.ConstructorGuard
}

// NewSubmitAddressesCommand creates a command carrying both address drafts.
// The drafts must be complete addresses; completeness is checked locally so
// an obviously unfinished form never reaches the validation provider.
func NewSubmitAddressesCommand(
	sessionID kernel.UUID,
	from, to address.Address,
) (SubmitAddressesCommand, error) {
	cmd := SubmitAddressesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setAddresses(from, to),
	); err != nil {
		return SubmitAddressesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitAddressesCommand) Validate() error {
	return c.guard.Validate(ErrSubmitAddressesCommandIsNotConstructed)
}

// SessionID returns the checkout session identifier.
func (c SubmitAddressesCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// From returns the origin address draft.
func (c SubmitAddressesCommand) From() address.Address {
	return c.from
}

// To returns the destination address draft.
func (c SubmitAddressesCommand) To() address.Address {
	return c.to
}

func (c *SubmitAddressesCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}

func (c *SubmitAddressesCommand) setAddresses(from, to address.Address) error {
	if err := errors.Join(from.Validate(), to.Validate()); err != nil {
		return err
	}

	c.from = from
	c.to = to
	return nil
}
