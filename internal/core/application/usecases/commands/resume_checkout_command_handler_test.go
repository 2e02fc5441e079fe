package commands_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"shiplabel/internal/core/application/usecases/commands"
	"shiplabel/internal/core/domain/model/checkout"
	"shiplabel/internal/core/domain/model/kernel"
	"shiplabel/internal/core/domain/services"
	"shiplabel/internal/core/ports"
	"shiplabel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testDraft(t *testing.T, intentID string) *checkout.Draft {
	t.Helper()
	draft, err := checkout.NewDraft(
		intentID,
		kernel.NewUUID(), kernel.NewUUID(),
		testAddress(t, "Ann Sender", "1 Origin Way", "Austin", "TX", "78701"),
		testAddress(t, "Bob Receiver", "2 Delivery Rd", "Denver", "CO", "80201"),
		testParcel(t),
		testRate(t, "rate-1", 5.45, 4),
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return draft
}

func newResumeHandler(
	store *fakeSessionStore,
	gateway *MockPaymentGateway,
	labels *MockLabelProvider,
	factory *MockPurchaseUoWFactory,
	publisher *MockEventPublisher,
) commands.ResumeCheckoutCommandHandler {
	return commands.NewResumeCheckoutCommandHandler(
		store, gateway, labels, factory, publisher, services.NewRateRanker(), slog.Default())
}

// consumeUoW builds a unit of work expecting only the draft claim.
func consumeUoW(draftRepo *MockDraftRepository) *MockPurchaseUoW {
	uow := new(MockPurchaseUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("DraftRepository").Return(draftRepo).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	return uow
}

// settleUoW builds a unit of work expecting the shipment insert and the
// removal of the claimed draft.
func settleUoW(shipmentRepo *MockShipmentRepository, draftRepo *MockDraftRepository) *MockPurchaseUoW {
	uow := new(MockPurchaseUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	uow.On("DraftRepository").Return(draftRepo).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	return uow
}

func TestResumeCheckoutCommandHandler_Handle_SucceededPaymentFinishesPurchase(t *testing.T) {
	ctx := t.Context()
	draft := testDraft(t, "pi_1")

	gateway := new(MockPaymentGateway)
	gateway.On("VerifySession", mock.Anything, "cs_token").
		Return(ports.PaymentVerification{IntentID: "pi_1", Status: ports.PaymentSucceeded}, nil).Once()

	draftRepo := new(MockDraftRepository)
	draftRepo.On("Consume", mock.Anything, "pi_1").Return(draft, nil).Once()
	draftRepo.On("Delete", mock.Anything, "pi_1").Return(nil).Once()

	labels := new(MockLabelProvider)
	labels.On("IssueLabel", mock.Anything, draft.From(), draft.To(), draft.Parcel(), draft.SelectedRate(), draft.BuyerID()).
		Return(ports.Label{TrackingNumber: "9400100000000000000002", LabelURL: "https://labels/2.pdf"}, nil).Once()

	shipmentRepo := new(MockShipmentRepository)
	shipmentRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()

	factory := new(MockPurchaseUoWFactory)
	factory.On("Create").Return(consumeUoW(draftRepo)).Once()
	factory.On("Create").Return(settleUoW(shipmentRepo, draftRepo)).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishShipmentPurchased", mock.Anything, mock.Anything).Return(nil).Once()

	store := newFakeSessionStore()
	cmd, err := commands.NewResumeCheckoutCommand("cs_token")
	require.NoError(t, err)

	h := newResumeHandler(store, gateway, labels, factory, publisher)
	session, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, checkout.StepComplete, session.Step())
	require.NotNil(t, session.ShipmentID())
	assert.True(t, session.ID().IsEqual(draft.SessionID()))

	stored, err := store.Get(ctx, session.ID())
	require.NoError(t, err)
	assert.Same(t, session, stored)

	gateway.AssertExpectations(t)
	draftRepo.AssertExpectations(t)
	labels.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestResumeCheckoutCommandHandler_Handle_ReplayedReturnURL(t *testing.T) {
	ctx := t.Context()

	gateway := new(MockPaymentGateway)
	gateway.On("VerifySession", mock.Anything, "cs_token").
		Return(ports.PaymentVerification{IntentID: "pi_1", Status: ports.PaymentSucceeded}, nil).Once()

	draftRepo := new(MockDraftRepository)
	draftRepo.On("Consume", mock.Anything, "pi_1").
		Return(nil, errs.NewObjectNotFoundError("draft", "pi_1")).Once()

	uow := new(MockPurchaseUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("DraftRepository").Return(draftRepo).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	factory := new(MockPurchaseUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewResumeCheckoutCommand("cs_token")
	require.NoError(t, err)

	h := newResumeHandler(newFakeSessionStore(), gateway,
		new(MockLabelProvider), factory, new(MockEventPublisher))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, checkout.ErrDuplicateIssuance)
}

func TestResumeCheckoutCommandHandler_Handle_CancelledPaymentReturnsToRates(t *testing.T) {
	ctx := t.Context()
	draft := testDraft(t, "pi_1")

	gateway := new(MockPaymentGateway)
	gateway.On("VerifySession", mock.Anything, "cs_token").
		Return(ports.PaymentVerification{IntentID: "pi_1", Status: ports.PaymentCancelled}, nil).Once()

	draftRepo := new(MockDraftRepository)
	draftRepo.On("Consume", mock.Anything, "pi_1").Return(draft, nil).Once()

	factory := new(MockPurchaseUoWFactory)
	factory.On("Create").Return(consumeUoW(draftRepo)).Once()

	store := newFakeSessionStore()
	cmd, err := commands.NewResumeCheckoutCommand("cs_token")
	require.NoError(t, err)

	h := newResumeHandler(store, gateway, new(MockLabelProvider), factory, new(MockEventPublisher))
	session, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, session)
	// everything the buyer entered is back on screen, priced selection kept
	assert.Equal(t, checkout.StepPackageAndRates, session.Step())
	require.NotNil(t, session.SelectedRate())
	assert.Equal(t, "rate-1", session.SelectedRate().ID())
	assert.True(t, session.IntentIsStale())
	assert.NotEmpty(t, session.LastError())
}

// The draft claim is the durable idempotency key shared by the in-session
// confirmation and the redirect return URL. A label failure on the first path
// must leave the intent unclaimable for the second.
func TestResumeCheckoutCommandHandler_Handle_CannotReplayIntentClaimedByConfirmation(t *testing.T) {
	ctx := t.Context()
	session := sessionAtPayment(t, "pi_1", testRate(t, "rate-1", 5.45, 4))

	gateway := new(MockPaymentGateway)
	gateway.On("Confirm", mock.Anything, "pi_1").
		Return(ports.PaymentConfirmation{Succeeded: true}, nil).Once()
	gateway.On("VerifySession", mock.Anything, "cs_token").
		Return(ports.PaymentVerification{IntentID: "pi_1", Status: ports.PaymentSucceeded}, nil).Once()

	draftRepo := new(MockDraftRepository)
	draftRepo.On("Consume", mock.Anything, "pi_1").Return(testDraft(t, "pi_1"), nil).Once()
	draftRepo.On("Consume", mock.Anything, "pi_1").
		Return(nil, errs.NewObjectNotFoundError("draft", "pi_1")).Once()

	labels := new(MockLabelProvider)
	labels.On("IssueLabel", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(ports.Label{}, errors.New("carrier rejected the purchase")).Once()

	confirmFactory := new(MockPurchaseUoWFactory)
	confirmFactory.On("Create").Return(consumeUoW(draftRepo)).Once()

	failedClaim := new(MockPurchaseUoW)
	failedClaim.On("Begin", mock.Anything).Return(nil).Once()
	failedClaim.On("DraftRepository").Return(draftRepo).Once()
	failedClaim.On("Rollback", mock.Anything).Return(nil).Once()
	resumeFactory := new(MockPurchaseUoWFactory)
	resumeFactory.On("Create").Return(failedClaim).Once()

	store := newFakeSessionStore(session)
	confirmCmd, err := commands.NewConfirmPaymentCommand(session.ID())
	require.NoError(t, err)

	confirm := newConfirmHandler(store, gateway, labels, confirmFactory, new(MockEventPublisher))
	err = confirm.Handle(ctx, confirmCmd)
	var failure *checkout.LabelIssuanceFailedError
	require.ErrorAs(t, err, &failure)

	resumeCmd, err := commands.NewResumeCheckoutCommand("cs_token")
	require.NoError(t, err)

	resume := newResumeHandler(store, gateway, labels, resumeFactory, new(MockEventPublisher))
	_, err = resume.Handle(ctx, resumeCmd)

	require.ErrorIs(t, err, checkout.ErrDuplicateIssuance)
	labels.AssertNumberOfCalls(t, "IssueLabel", 1)
	draftRepo.AssertExpectations(t)
}

func TestResumeCheckoutCommandHandler_Handle_PendingPaymentLeavesDraft(t *testing.T) {
	ctx := t.Context()

	gateway := new(MockPaymentGateway)
	gateway.On("VerifySession", mock.Anything, "cs_token").
		Return(ports.PaymentVerification{IntentID: "pi_1", Status: ports.PaymentPending}, nil).Once()

	factory := new(MockPurchaseUoWFactory) // no Create expected

	cmd, err := commands.NewResumeCheckoutCommand("cs_token")
	require.NoError(t, err)

	h := newResumeHandler(newFakeSessionStore(), gateway,
		new(MockLabelProvider), factory, new(MockEventPublisher))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, checkout.ErrPaymentTimedOut)
	factory.AssertNotCalled(t, "Create")
}
