package checkout

import (
	"errors"
	"fmt"
	"strings"
)

// Business failure taxonomy of the checkout workflow. Transport-level
// failures (timeouts, connection errors) are a separate concern and are
// represented by ports.ErrNetworkOrTimeout; they must never be conflated
// with the rejections below.
var (
	// ErrNoRatesAvailable is returned when the rate shopper answered
	// successfully but offered no service for the given inputs. Retryable
	// after the user edits addresses or package details.
	ErrNoRatesAvailable = errors.New("no service available for these inputs")

	// ErrPaymentTimedOut is returned when payment confirmation exceeded its
	// bounded interval. Distinct from a declined payment: the selected rate
	// is retained and a retry must create a fresh payment intent.
	ErrPaymentTimedOut = errors.New("payment confirmation timed out")

	// ErrDuplicateIssuance is the internal idempotency guard: a second label
	// issuance was attempted for a payment that already produced one. It
	// should never surface to the user when the guard works.
	ErrDuplicateIssuance = errors.New("label already issued for this payment")

	// ErrTooManyPaymentAttempts is returned when a checkout used up its
	// bounded number of user-initiated payment retries. The entered data is
	// kept for display, but no further intent can be created.
	ErrTooManyPaymentAttempts = errors.New("payment attempt limit reached for this checkout")
)

// ValidationRejectedError carries the per-address messages of a failed
// address-validation gate. Only the failing side(s) carry messages; a valid
// side stays silent so the user edits exactly what was rejected.
type ValidationRejectedError struct {
	FromMessages []string
	ToMessages   []string
}

// Error implements the error interface.
func (e *ValidationRejectedError) Error() string {
	parts := make([]string, 0, 2)
	if len(e.FromMessages) > 0 {
		parts = append(parts, "from address: "+strings.Join(e.FromMessages, "; "))
	}
	if len(e.ToMessages) > 0 {
		parts = append(parts, "to address: "+strings.Join(e.ToMessages, "; "))
	}
	return "address validation rejected: " + strings.Join(parts, " | ")
}

// PaymentFailedError carries the provider-supplied reason of a declined or
// otherwise failed payment. The user may retry payment a bounded number of
// times; retries are never automatic.
type PaymentFailedError struct {
	Reason string
}

// Error implements the error interface.
func (e *PaymentFailedError) Error() string {
	if e.Reason == "" {
		return "payment failed"
	}
	return fmt.Sprintf("payment failed: %s", e.Reason)
}

// LabelIssuanceFailedError is the most severe failure in the workflow: payment
// was captured but the label purchase did not complete. It must surface with a
// support-directing message and must never trigger another payment attempt.
type LabelIssuanceFailedError struct {
	Cause error
}

// Error implements the error interface.
func (e *LabelIssuanceFailedError) Error() string {
	return "payment succeeded but label creation failed; " +
		"check your shipment history or contact support before retrying"
}

// Unwrap exposes the underlying issuance failure for logging and classification.
func (e *LabelIssuanceFailedError) Unwrap() error {
	return e.Cause
}
