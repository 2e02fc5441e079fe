package checkout

import (
	"fmt"

	"shiplabel/internal/pkg/errs"
)

// Step represents the wizard position of a checkout session.
//
// Steps are strictly ordered and forward-biased:
//
//	Address ──> PackageAndRates ──> Payment ──> Complete
//
// Backward navigation is allowed only to previously completed steps. There is
// no persisted failure state: failures surface as step-local error messages
// while the step stays put, so the user can retry without losing data.
type Step int

const (
	// StepUnknown represents an invalid or undefined step.
	StepUnknown Step = iota

	// StepAddress collects and validates the origin and destination addresses.
	StepAddress

	// StepPackageAndRates collects package dimensions and shops carrier rates.
	StepPackageAndRates

	// StepPayment collects payment for the selected rate.
	StepPayment

	// StepComplete is the terminal confirmation step with the purchased label.
	StepComplete
)

func getStepStrings() map[Step]string {
	return map[Step]string{
		StepUnknown:         "Unknown",
		StepAddress:         "address",
		StepPackageAndRates: "package_and_rates",
		StepPayment:         "payment",
		StepComplete:        "complete",
	}
}

// Validate checks if the Step value is one of the defined wizard steps.
func (s Step) Validate() error {
	if s < StepAddress || s > StepComplete {
		return errs.NewValueIsInvalidErrorWithCause("step",
			fmt.Errorf("%d is not a valid step", s))
	}
	return nil
}

// String returns the wire name of the step. Implements fmt.Stringer.
func (s Step) String() string {
	if str, ok := getStepStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
