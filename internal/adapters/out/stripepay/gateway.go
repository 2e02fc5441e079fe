// Package stripepay implements the payment gateway port on Stripe.
// Provider statuses and error codes are mapped to the domain's payment
// vocabulary at this boundary so stripe-go types never leak inward.
package stripepay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"shiplabel/internal/core/ports"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// confirmTimeout bounds the confirmation call. A confirmation that outlives
// it is ambiguous and reported as a transport fault, never as a failure.
const confirmTimeout = 60 * time.Second

// createTimeout bounds intent creation and verification lookups.
const createTimeout = 15 * time.Second

// Gateway implements ports.PaymentGateway using the Stripe API.
type Gateway struct {
	client *client.API
}

// NewGateway creates a Stripe-backed payment gateway.
func NewGateway(apiKey string) *Gateway {
	sc := &client.API{}
	sc.Init(apiKey, nil)
	return &Gateway{client: sc}
}

// CreateIntent creates a payment intent priced in minor units. The intent id
// doubles as the purchase idempotency key downstream, so it is always a fresh
// one per selection.
func (g *Gateway) CreateIntent(
	ctx context.Context,
	amountCents int64,
	currency string,
	metadata map[string]string,
) (ports.PaymentIntent, error) {
	ctx, cancel := context.WithTimeout(ctx, createTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if len(metadata) > 0 {
		params.Metadata = make(map[string]string, len(metadata))
		for k, v := range metadata {
			params.Metadata[k] = v
		}
	}

	pi, err := g.client.PaymentIntents.New(params)
	if err != nil {
		return ports.PaymentIntent{}, mapStripeError(err)
	}

	return ports.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		AmountCents:  pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}

// Confirm settles the intent. A decline is a successful call with
// Succeeded=false; only transport-level trouble is an error.
func (g *Gateway) Confirm(ctx context.Context, intentID string) (ports.PaymentConfirmation, error) {
	ctx, cancel := context.WithTimeout(ctx, confirmTimeout)
	defer cancel()

	params := &stripe.PaymentIntentConfirmParams{}
	params.Context = ctx

	pi, err := g.client.PaymentIntents.Confirm(intentID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			return ports.PaymentConfirmation{
				Succeeded:     false,
				FailureReason: declineReason(stripeErr),
			}, nil
		}
		return ports.PaymentConfirmation{}, mapStripeError(err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return ports.PaymentConfirmation{
			Succeeded:     false,
			FailureReason: fmt.Sprintf("payment is in status %s", pi.Status),
		}, nil
	}

	return ports.PaymentConfirmation{Succeeded: true}, nil
}

// VerifySession looks up the provider-verified state of a payment from the
// URL-carried intent reference after an external redirect.
func (g *Gateway) VerifySession(ctx context.Context, sessionToken string) (ports.PaymentVerification, error) {
	ctx, cancel := context.WithTimeout(ctx, createTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.client.PaymentIntents.Get(sessionToken, params)
	if err != nil {
		return ports.PaymentVerification{}, mapStripeError(err)
	}

	return ports.PaymentVerification{
		IntentID: pi.ID,
		Status:   mapIntentStatus(pi.Status),
	}, nil
}

func mapIntentStatus(status stripe.PaymentIntentStatus) ports.PaymentStatus {
	switch status {
	case stripe.PaymentIntentStatusSucceeded:
		return ports.PaymentSucceeded
	case stripe.PaymentIntentStatusCanceled:
		return ports.PaymentCancelled
	case stripe.PaymentIntentStatusRequiresPaymentMethod:
		return ports.PaymentFailed
	case stripe.PaymentIntentStatusProcessing:
		return ports.PaymentPending
	default:
		// requires_action, requires_confirmation, requires_capture
		return ports.PaymentPending
	}
}

func declineReason(stripeErr *stripe.Error) string {
	switch stripeErr.Code {
	case stripe.ErrorCodeCardDeclined:
		return "card was declined"
	case stripe.ErrorCodeExpiredCard:
		return "card has expired"
	case stripe.ErrorCodeIncorrectCVC:
		return "security code did not match"
	default:
		return stripeErr.Msg
	}
}

// mapStripeError converts stripe-go errors into the port's vocabulary so the
// application layer can tell an ambiguous transport fault from everything else.
func mapStripeError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", ports.ErrNetworkOrTimeout, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %w", ports.ErrNetworkOrTimeout, err)
	}

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: stripe returned %d", ports.ErrNetworkOrTimeout, stripeErr.HTTPStatusCode)
	}

	return err
}
