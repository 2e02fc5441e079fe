package commands

import (
	"errors"

	"shiplabel/internal/pkg/errs"
	"shiplabel/internal/pkg/guard"
)

// ErrResumeCheckoutCommandIsNotConstructed is returned when the command was
// not created through its constructor.
var ErrResumeCheckoutCommandIsNotConstructed = errors.New(
	"ResumeCheckoutCommand must be created via NewResumeCheckoutCommand constructor",
)

// ResumeCheckoutCommand represents the return leg of an external payment
// redirect: the buyer landed back on the return URL carrying the provider's
// session token.
type ResumeCheckoutCommand struct { //nolint:recvcheck //using for validation
	paymentSessionToken string

	guard guard.ConstructorGuard
}

// NewResumeCheckoutCommand creates a resumption command from the URL-carried
// provider token. The token is opaque; it is only ever handed back to the
// provider for server-side verification.
func NewResumeCheckoutCommand(paymentSessionToken string) (ResumeCheckoutCommand, error) {
	cmd := ResumeCheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setPaymentSessionToken(paymentSessionToken); err != nil {
		return ResumeCheckoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResumeCheckoutCommand) Validate() error {
	return c.guard.Validate(ErrResumeCheckoutCommandIsNotConstructed)
}

// PaymentSessionToken returns the provider's opaque session token.
func (c ResumeCheckoutCommand) PaymentSessionToken() string {
	return c.paymentSessionToken
}

func (c *ResumeCheckoutCommand) setPaymentSessionToken(token string) error {
	if token == "" {
		return errs.NewValueIsRequiredError("payment session token")
	}

	c.paymentSessionToken = token
	return nil
}
