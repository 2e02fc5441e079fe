package shipment

import (
	"fmt"

	"shiplabel/internal/pkg/errs"
)

// Status represents the lifecycle state of a purchased shipment.
//
// State transitions:
//
//	Created ──> Shipped ──> Delivered
//	   │
//	   └──> Cancelled
//
// The checkout core drives only one transition after creation: a void
// operation moves a Created shipment to Cancelled. Shipped and Delivered are
// reached from carrier tracking updates outside this core, but the state
// machine still validates them so restored records stay consistent.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status: payment succeeded and a label was purchased.
	Created

	// Shipped indicates the carrier has accepted the package.
	Shipped

	// Delivered indicates the carrier reports final delivery.
	Delivered

	// Cancelled indicates the label was voided before use.
	// This is a final state with no further transitions allowed.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Created:   "created",
		Shipped:   "shipped",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "created",
		Shipped:   "shipped",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// Validate checks if the Status value is one of the valid lifecycle states.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase status name used in API responses and storage.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Created -> Cancelled (label voided before the carrier accepted it)
//
// Any other source state fails: a package already moving through the carrier
// network cannot be voided from here.
func (s Status) Cancel() (Status, error) {
	if s != Created {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to cancel", s.String()))
	}

	return Cancelled, nil
}
