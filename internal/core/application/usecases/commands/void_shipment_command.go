package commands

import (
	"errors"

	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/pkg/guard"
)

// ErrVoidShipmentCommandIsNotConstructed is returned when the command was not
// created through its constructor.
var ErrVoidShipmentCommandIsNotConstructed = errors.New(
	"VoidShipmentCommand must be created via NewVoidShipmentCommand constructor",
)

// VoidShipmentCommand represents a request to void an unused label and cancel
// its shipment.
type VoidShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewVoidShipmentCommand creates a void command for the given shipment.
func NewVoidShipmentCommand(shipmentID kernel.UUID) (VoidShipmentCommand, error) {
	cmd := VoidShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setShipmentID(shipmentID); err != nil {
		return VoidShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c VoidShipmentCommand) Validate() error {
	return c.guard.Validate(ErrVoidShipmentCommandIsNotConstructed)
}

// ShipmentID returns the shipment to void.
func (c VoidShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c *VoidShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}
