package commands

import (
	"context"
	"math"
	"strings"
	"time"

	"shiplabel/internal/core/domain/model/checkout"
	"shiplabel/internal/core/ports"
)

// BeginPaymentCommandHandler starts payment for the selected rate.
//
// Every invocation prices a fresh intent from the current selection, so an
// intent can never charge an amount the buyer is no longer looking at. Before
// handing the intent to the client, the handler writes the resumption draft:
// if the buyer leaves for an external redirect and comes back, the purchase
// can be rebuilt from durable state keyed by the intent id.
//
// Payment retries are bounded per checkout; once the session's attempt bound
// is reached the handler refuses with checkout.ErrTooManyPaymentAttempts
// without touching the provider.
type BeginPaymentCommandHandler struct {
	sessions   ports.SessionStore
	gateway    ports.PaymentGateway
	uowFactory DraftUoWFactory
}

// NewBeginPaymentCommandHandler creates the payment-start handler.
func NewBeginPaymentCommandHandler(
	sessions ports.SessionStore,
	gateway ports.PaymentGateway,
	uowFactory DraftUoWFactory,
) BeginPaymentCommandHandler {
	return BeginPaymentCommandHandler{
		sessions:   sessions,
		gateway:    gateway,
		uowFactory: uowFactory,
	}
}

// Handle creates the payment intent and persists the resumption draft.
// Returns the intent so the client can mount the provider's payment element.
func (h *BeginPaymentCommandHandler) Handle(
	ctx context.Context,
	cmd BeginPaymentCommand,
) (ports.PaymentIntent, error) {
	if err := cmd.Validate(); err != nil {
		return ports.PaymentIntent{}, err
	}

	session, err := h.sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return ports.PaymentIntent{}, err
	}

	if !session.TryBeginCall() {
		return ports.PaymentIntent{}, checkout.ErrStepCallInFlight
	}
	defer session.EndCall()

	if session.Step() != checkout.StepPayment {
		if err = session.AdvanceToPayment(); err != nil {
			return ports.PaymentIntent{}, err
		}
	}

	// Checked before the provider call: an intent that could never be
	// attached must not be created.
	if session.PaymentAttemptsExhausted() {
		session.RecordFailure(checkout.ErrTooManyPaymentAttempts.Error())
		return ports.PaymentIntent{}, checkout.ErrTooManyPaymentAttempts
	}

	selected := session.SelectedRate()
	previousIntentID := session.IntentID()

	intent, err := h.gateway.CreateIntent(ctx,
		amountInCents(selected.Amount()),
		strings.ToLower(selected.Currency()),
		map[string]string{
			"session_id": session.ID().String(),
			"buyer_id":   session.BuyerID().String(),
			"rate_id":    selected.ID(),
		},
	)
	if err != nil {
		session.RecordFailure("payment could not be started, please retry")
		return ports.PaymentIntent{}, err
	}

	if err = session.AttachIntent(intent.ID); err != nil {
		return ports.PaymentIntent{}, err
	}

	draft, err := checkout.NewDraft(
		intent.ID,
		session.ID(), session.BuyerID(),
		session.From(), session.To(),
		*session.Parcel(),
		*selected,
		time.Now().UTC(),
	)
	if err != nil {
		return ports.PaymentIntent{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return ports.PaymentIntent{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	draftRepo := uow.DraftRepository()
	if previousIntentID != "" {
		if err = draftRepo.Delete(ctx, previousIntentID); err != nil {
			return ports.PaymentIntent{}, err
		}
	}

	if err = draftRepo.Add(ctx, draft); err != nil {
		return ports.PaymentIntent{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ports.PaymentIntent{}, err
	}

	return intent, nil
}

// amountInCents converts a rate price to the provider's minor units.
func amountInCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
