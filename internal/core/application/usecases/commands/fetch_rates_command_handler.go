package commands

import (
	"context"
	"errors"

	"shiplabel/internal/core/domain/model/checkout"
	"shiplabel/internal/core/domain/services"
	"shiplabel/internal/core/ports"
	"shiplabel/internal/pkg/errs"
)

// FetchRatesCommandHandler shops carrier rates for a session and stores the
// ranked list on it. Rates are only ever fetched for the session's current
// addresses and package; the gate that guarantees that lives on the session.
type FetchRatesCommandHandler struct {
	sessions ports.SessionStore
	shopper  ports.RateShopper
	ranker   services.RateRanker
}

// NewFetchRatesCommandHandler creates the rate-shopping handler.
func NewFetchRatesCommandHandler(
	sessions ports.SessionStore,
	shopper ports.RateShopper,
	ranker services.RateRanker,
) FetchRatesCommandHandler {
	return FetchRatesCommandHandler{
		sessions: sessions,
		shopper:  shopper,
		ranker:   ranker,
	}
}

// Handle fetches, ranks, and stores the rate list.
//
// A transport fault leaves the previously displayed rates untouched and
// returns ports.ErrNetworkOrTimeout. An empty provider response is a business
// outcome, not a fault: it is stored as such and reported as
// checkout.ErrNoRatesAvailable.
func (h *FetchRatesCommandHandler) Handle(ctx context.Context, cmd FetchRatesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	session, err := h.sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	if !session.CanFetchRates() {
		return errs.NewValueIsRequiredError("validated addresses and package details")
	}

	if !session.TryBeginCall() {
		return checkout.ErrStepCallInFlight
	}
	defer session.EndCall()

	fetched, err := h.shopper.FetchRates(ctx, session.From(), session.To(), *session.Parcel())
	if err != nil {
		if errors.Is(err, ports.ErrNetworkOrTimeout) {
			session.RecordFailure("rate lookup timed out, please retry")
		}
		return err
	}

	return session.PutRates(h.ranker.Rank(fetched))
}
