package commands

import (
	"errors"

	"shiplabel/internal/core/domain/model/address"
	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/pkg/guard"
)

// ErrSaveAddressCommandIsNotConstructed is returned when the command was not
// created through its constructor.
var ErrSaveAddressCommandIsNotConstructed = errors.New(
	"SaveAddressCommand must be created via NewSaveAddressCommand constructor",
)

// SaveAddressCommand represents a request to store an address in the buyer's
// address book for reuse in later checkouts.
type SaveAddressCommand struct { //nolint:recvcheck //using for validation
	buyerID kernel.UUID
	addr    address.Address

	guard guard.ConstructorGuard
}

// NewSaveAddressCommand creates an address-book save command.
func NewSaveAddressCommand(buyerID kernel.UUID, addr address.Address) (SaveAddressCommand, error) {
	cmd := SaveAddressCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBuyerID(buyerID),
		cmd.setAddress(addr),
	); err != nil {
		return SaveAddressCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SaveAddressCommand) Validate() error {
	return c.guard.Validate(ErrSaveAddressCommandIsNotConstructed)
}

// BuyerID returns the owner of the address book.
func (c SaveAddressCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// Address returns the address to save.
func (c SaveAddressCommand) Address() address.Address {
	return c.addr
}

func (c *SaveAddressCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	c.buyerID = buyerID
	return nil
}

func (c *SaveAddressCommand) setAddress(addr address.Address) error {
	if err := addr.Validate(); err != nil {
		return err
	}

	c.addr = addr
	return nil
}
