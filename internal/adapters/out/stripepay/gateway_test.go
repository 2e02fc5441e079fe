package stripepay

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"shiplabel/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
)

func TestMapIntentStatus(t *testing.T) {
	tests := []struct {
		status stripe.PaymentIntentStatus
		want   ports.PaymentStatus
	}{
		{stripe.PaymentIntentStatusSucceeded, ports.PaymentSucceeded},
		{stripe.PaymentIntentStatusCanceled, ports.PaymentCancelled},
		{stripe.PaymentIntentStatusRequiresPaymentMethod, ports.PaymentFailed},
		{stripe.PaymentIntentStatusProcessing, ports.PaymentPending},
		{stripe.PaymentIntentStatusRequiresAction, ports.PaymentPending},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mapIntentStatus(tt.status), string(tt.status))
	}
}

func TestDeclineReason(t *testing.T) {
	assert.Equal(t, "card was declined", declineReason(&stripe.Error{Code: stripe.ErrorCodeCardDeclined}))
	assert.Equal(t, "card has expired", declineReason(&stripe.Error{Code: stripe.ErrorCodeExpiredCard}))
	assert.Equal(t, "try again later", declineReason(&stripe.Error{Code: stripe.ErrorCodeProcessingError, Msg: "try again later"}))
}

func TestMapStripeError(t *testing.T) {
	t.Run("should classify deadlines and transport faults as network trouble", func(t *testing.T) {
		require.ErrorIs(t, mapStripeError(context.DeadlineExceeded), ports.ErrNetworkOrTimeout)
		require.ErrorIs(t,
			mapStripeError(&url.Error{Op: "Post", URL: "https://api.stripe.com", Err: errors.New("connection refused")}),
			ports.ErrNetworkOrTimeout)
	})

	t.Run("should classify provider 5xx as network trouble", func(t *testing.T) {
		err := mapStripeError(&stripe.Error{HTTPStatusCode: 503})
		require.ErrorIs(t, err, ports.ErrNetworkOrTimeout)
	})

	t.Run("should pass provider 4xx through unchanged", func(t *testing.T) {
		original := &stripe.Error{HTTPStatusCode: 402, Code: stripe.ErrorCodeCardDeclined}
		err := mapStripeError(original)
		assert.NotErrorIs(t, err, ports.ErrNetworkOrTimeout)
		var stripeErr *stripe.Error
		require.ErrorAs(t, err, &stripeErr)
	})
}
