package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"shiplabel/internal/core/domain/model/address"
	"shiplabel/internal/core/domain/model/checkout"
	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/core/domain/model/rate"
	"shiplabel/internal/core/domain/model/shipment"
	"shiplabel/internal/core/domain/services"
	"shiplabel/internal/core/ports"
	"shiplabel/internal/pkg/errs"
)

// ResumeCheckoutCommandHandler rebuilds a purchase after an external payment
// redirect from durable state alone.
//
// The return URL is untrusted: the payment outcome is always re-verified with
// the provider from the URL-carried token, never taken from a client-reported
// success flag. The resumption draft is consumed exactly once, so replaying a
// reloaded return URL can never issue a second label; a replay surfaces as
// checkout.ErrDuplicateIssuance.
type ResumeCheckoutCommandHandler struct {
	sessions   ports.SessionStore
	gateway    ports.PaymentGateway
	labels     ports.LabelProvider
	uowFactory PurchaseUoWFactory
	publisher  ports.EventPublisher
	ranker     services.RateRanker
	logger     *slog.Logger
}

// NewResumeCheckoutCommandHandler creates the redirect-resumption handler.
func NewResumeCheckoutCommandHandler(
	sessions ports.SessionStore,
	gateway ports.PaymentGateway,
	labels ports.LabelProvider,
	uowFactory PurchaseUoWFactory,
	publisher ports.EventPublisher,
	ranker services.RateRanker,
	logger *slog.Logger,
) ResumeCheckoutCommandHandler {
	return ResumeCheckoutCommandHandler{
		sessions:   sessions,
		gateway:    gateway,
		labels:     labels,
		uowFactory: uowFactory,
		publisher:  publisher,
		ranker:     ranker,
		logger:     logger,
	}
}

// Handle verifies the payment outcome, claims the draft, and finishes the
// purchase. Returns the rebuilt session: terminal with a shipment id when the
// payment succeeded, back on rate selection when it did not.
//
// A still-pending payment leaves the draft unclaimed and returns
// checkout.ErrPaymentTimedOut so the buyer can retry the return URL later.
func (h *ResumeCheckoutCommandHandler) Handle(
	ctx context.Context,
	cmd ResumeCheckoutCommand,
) (*checkout.Session, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	verification, err := h.gateway.VerifySession(ctx, cmd.PaymentSessionToken())
	if err != nil {
		return nil, err
	}

	if verification.Status == ports.PaymentPending {
		return nil, checkout.ErrPaymentTimedOut
	}

	draft, err := h.claimDraft(ctx, verification.IntentID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, checkout.ErrDuplicateIssuance
		}
		return nil, err
	}

	session, err := h.rebuildSession(draft)
	if err != nil {
		return nil, err
	}

	if verification.Status != ports.PaymentSucceeded {
		session.RecordFailure((&checkout.PaymentFailedError{Reason: "payment was not completed"}).Error())
		if err = session.ReturnToRateSelection(); err != nil {
			return nil, err
		}
		return session, h.storeRebuilt(ctx, session)
	}

	if err = session.BeginIssuance(verification.IntentID); err != nil {
		return nil, err
	}

	label, err := h.labels.IssueLabel(ctx,
		draft.From(), draft.To(), draft.Parcel(), draft.SelectedRate(), draft.BuyerID())
	if err != nil {
		failure := &checkout.LabelIssuanceFailedError{Cause: err}
		session.RecordFailure(failure.Error())
		return nil, failure
	}

	shipmentID := kernel.NewUUID()
	aggregate, err := shipment.NewShipment(
		shipmentID, draft.BuyerID(),
		draft.From(), draft.To(),
		draft.Parcel(), draft.SelectedRate(),
		label.TrackingNumber, label.LabelURL,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = h.persistPurchase(ctx, aggregate, draft.IntentID()); err != nil {
		return nil, err
	}

	if err = h.publisher.PublishShipmentPurchased(ctx, aggregate); err != nil {
		h.logger.Warn("shipment purchased event not published",
			"shipment_id", shipmentID.String(), "error", err)
	}

	if err = session.Complete(shipmentID); err != nil {
		return nil, err
	}

	return session, h.storeRebuilt(ctx, session)
}

// claimDraft consumes the resumption draft in its own transaction. The claim
// commits before any label purchase, so a crash mid-purchase can never leave
// the draft replayable.
func (h *ResumeCheckoutCommandHandler) claimDraft(
	ctx context.Context,
	intentID string,
) (*checkout.Draft, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	draft, err := uow.DraftRepository().Consume(ctx, intentID)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return draft, nil
}

// rebuildSession replays the frozen draft inputs into a fresh session up to
// the payment step. The addresses in a draft already passed the validation
// gate before the redirect, so they re-enter as valid with no corrections.
func (h *ResumeCheckoutCommandHandler) rebuildSession(draft *checkout.Draft) (*checkout.Session, error) {
	session, err := checkout.NewSession(draft.SessionID(), draft.BuyerID())
	if err != nil {
		return nil, err
	}

	if err = session.SubmitAddresses(draft.From(), draft.To()); err != nil {
		return nil, err
	}
	valid := address.ValidationResult{IsValid: true}
	if _, err = session.ApplyValidationOutcome(valid, valid); err != nil {
		return nil, err
	}

	if err = session.SetParcel(draft.Parcel()); err != nil {
		return nil, err
	}
	if err = session.PutRates(h.ranker.Rank([]rate.Rate{draft.SelectedRate()})); err != nil {
		return nil, err
	}
	if err = session.SelectRate(draft.SelectedRate().ID()); err != nil {
		return nil, err
	}

	if err = session.AdvanceToPayment(); err != nil {
		return nil, err
	}
	if err = session.AttachIntent(draft.IntentID()); err != nil {
		return nil, err
	}

	return session, nil
}

// persistPurchase commits the new shipment row and removes the claimed draft
// in one transaction; a settled purchase leaves nothing behind to sweep.
func (h *ResumeCheckoutCommandHandler) persistPurchase(
	ctx context.Context,
	aggregate *shipment.Shipment,
	intentID string,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ShipmentRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err := uow.DraftRepository().Delete(ctx, intentID); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// storeRebuilt replaces any in-memory remnant of the pre-redirect session
// with the rebuilt one under the same identifier.
func (h *ResumeCheckoutCommandHandler) storeRebuilt(ctx context.Context, session *checkout.Session) error {
	_ = h.sessions.Remove(ctx, session.ID())
	return h.sessions.Add(ctx, session)
}
