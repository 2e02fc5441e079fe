package commands

import (
	"errors"

	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/core/domain/model/parcel"
	"shiplabel/internal/pkg/guard"
)

// ErrSubmitPackageCommandIsNotConstructed is returned when the command was
// not created through its constructor.
var ErrSubmitPackageCommandIsNotConstructed = errors.New(
	"SubmitPackageCommand must be created via NewSubmitPackageCommand constructor",
)

// SubmitPackageCommand represents the package-details submission: dimensions
// and weight of the parcel the label will be purchased for.
type SubmitPackageCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	pkg       parcel.Parcel

	guard guard.ConstructorGuard
}

// NewSubmitPackageCommand creates a command carrying the package details.
func NewSubmitPackageCommand(sessionID kernel.UUID, pkg parcel.Parcel) (SubmitPackageCommand, error) {
	cmd := SubmitPackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setParcel(pkg),
	); err != nil {
		return SubmitPackageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitPackageCommand) Validate() error {
	return c.guard.Validate(ErrSubmitPackageCommandIsNotConstructed)
}

// SessionID returns the checkout session identifier.
func (c SubmitPackageCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// Parcel returns the submitted package details.
func (c SubmitPackageCommand) Parcel() parcel.Parcel {
	return c.pkg
}

func (c *SubmitPackageCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}

	c.sessionID = sessionID
	return nil
}

func (c *SubmitPackageCommand) setParcel(pkg parcel.Parcel) error {
	if err := pkg.Validate(); err != nil {
		return err
	}

	c.pkg = pkg
	return nil
}
