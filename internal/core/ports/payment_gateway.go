package ports

import "context"

// PaymentStatus is the canonical state of a payment as reported by the
// provider, already mapped from provider-specific status strings.
type PaymentStatus string

const (
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentPending   PaymentStatus = "pending"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentFailed    PaymentStatus = "failed"
)

// PaymentIntent is the handle of one payment attempt created with the provider.
type PaymentIntent struct {
	// ID is the provider's intent identifier, used as the label-issuance
	// idempotency key and as the durable draft key across redirects.
	ID string

	// ClientSecret is handed to the hosted payment element on the client.
	ClientSecret string

	// AmountCents is the charged amount in minor units, for display echo.
	AmountCents int64

	// Currency is the lowercase currency code the intent was created in.
	Currency string
}

// PaymentConfirmation is the outcome of confirming an intent.
type PaymentConfirmation struct {
	Succeeded     bool
	FailureReason string
}

// PaymentVerification is the provider-verified state of a payment session,
// looked up server-side from a URL-carried token after an external redirect.
// A client-reported success flag is never trusted in its place.
type PaymentVerification struct {
	IntentID string
	Status   PaymentStatus
}

// PaymentGateway is the payment provider contract.
//
// The amount passed to CreateIntent is always derived from the currently
// selected rate at call time; the orchestrator re-creates intents rather than
// reusing one priced from a stale selection. Implementations apply bounded
// timeouts and surface transport faults as ErrNetworkOrTimeout; a declined
// payment is a successful call with Succeeded=false.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (PaymentIntent, error)
	Confirm(ctx context.Context, intentID string) (PaymentConfirmation, error)
	VerifySession(ctx context.Context, sessionToken string) (PaymentVerification, error)
}
