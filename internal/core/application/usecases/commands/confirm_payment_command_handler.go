package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"shiplabel/internal/core/domain/model/checkout"
	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/core/domain/model/shipment"
	"shiplabel/internal/core/ports"
	"shiplabel/internal/pkg/errs"
)

// ConfirmPaymentCommandHandler settles the payment and purchases the label.
//
// This is the money step, and its error handling is deliberately asymmetric:
//   - A declined payment is recoverable: the session returns to rate
//     selection with everything kept, and a retry prices a fresh intent.
//   - A confirmation timeout is ambiguous: the charge may or may not have
//     gone through, so the attached intent is expired, nothing is retried
//     automatically, and the buyer is told to check their statement
//     (checkout.ErrPaymentTimedOut).
//   - A label failure after a captured payment is never retried silently:
//     the draft claim stays consumed and the buyer is directed to support
//     (checkout.LabelIssuanceFailedError).
//
// Before the label purchase the handler consumes the resumption draft for
// the intent. The guarded claim is the durable idempotency key shared with
// the redirect-resumption path: whichever path claims it first issues the
// label, every other caller sees checkout.ErrDuplicateIssuance. The new
// shipment row and the removal of the claimed draft commit in one
// transaction.
type ConfirmPaymentCommandHandler struct {
	sessions   ports.SessionStore
	gateway    ports.PaymentGateway
	labels     ports.LabelProvider
	uowFactory PurchaseUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewConfirmPaymentCommandHandler creates the payment-confirmation handler.
func NewConfirmPaymentCommandHandler(
	sessions ports.SessionStore,
	gateway ports.PaymentGateway,
	labels ports.LabelProvider,
	uowFactory PurchaseUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		sessions:   sessions,
		gateway:    gateway,
		labels:     labels,
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle confirms the intent, issues the label at most once per payment, and
// records the shipment. On success the session reaches its terminal step
// carrying the new shipment identifier.
func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	session, err := h.sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	if !session.TryBeginCall() {
		return checkout.ErrStepCallInFlight
	}
	defer session.EndCall()

	if session.IntentIsStale() {
		return errs.NewValueIsRequiredError("a payment intent for the current selection")
	}
	intentID := session.IntentID()

	confirmation, err := h.gateway.Confirm(ctx, intentID)
	if err != nil {
		if errors.Is(err, ports.ErrNetworkOrTimeout) {
			session.RecordFailure(checkout.ErrPaymentTimedOut.Error())
			// The outcome is unknown: this intent must not be confirmed
			// again. A retry starts payment anew with a fresh intent; the
			// draft stays so the return URL can still settle the charge.
			session.ExpireIntent()
			return checkout.ErrPaymentTimedOut
		}
		return err
	}

	if !confirmation.Succeeded {
		failure := &checkout.PaymentFailedError{Reason: confirmation.FailureReason}
		session.RecordFailure(failure.Error())
		if err = session.ReturnToRateSelection(); err != nil {
			return err
		}
		return failure
	}

	if err = session.BeginIssuance(intentID); err != nil {
		return err
	}

	if err = h.claimDraft(ctx, intentID); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return checkout.ErrDuplicateIssuance
		}
		return err
	}

	label, err := h.labels.IssueLabel(ctx,
		session.From(), session.To(), *session.Parcel(), *session.SelectedRate(),
		session.BuyerID())
	if err != nil {
		failure := &checkout.LabelIssuanceFailedError{Cause: err}
		session.RecordFailure(failure.Error())
		return failure
	}

	shipmentID := kernel.NewUUID()
	aggregate, err := shipment.NewShipment(
		shipmentID, session.BuyerID(),
		session.From(), session.To(),
		*session.Parcel(), *session.SelectedRate(),
		label.TrackingNumber, label.LabelURL,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = h.persistPurchase(ctx, aggregate, intentID); err != nil {
		return err
	}

	if err = h.publisher.PublishShipmentPurchased(ctx, aggregate); err != nil {
		h.logger.Warn("shipment purchased event not published",
			"shipment_id", shipmentID.String(), "error", err)
	}

	return session.Complete(shipmentID)
}

// claimDraft consumes the resumption draft for the intent in its own
// transaction. The claim commits before the label purchase, so neither a
// crash mid-purchase nor a concurrent redirect resumption can replay it.
func (h *ConfirmPaymentCommandHandler) claimDraft(ctx context.Context, intentID string) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.DraftRepository().Consume(ctx, intentID); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *ConfirmPaymentCommandHandler) persistPurchase(
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
