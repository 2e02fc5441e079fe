package commands_test

import (
	"errors"
	"log/slog"
	"testing"

	"shiplabel/internal/core/application/usecases/commands"
	"shiplabel/internal/core/domain/model/checkout"
	"shiplabel/internal/core/ports"
	"shiplabel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newConfirmHandler(
	store *fakeSessionStore,
	gateway *MockPaymentGateway,
	labels *MockLabelProvider,
	factory *MockPurchaseUoWFactory,
	publisher *MockEventPublisher,
) commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(
		store, gateway, labels, factory, publisher, slog.Default())
}

func TestConfirmPaymentCommandHandler_Handle_PurchasesLabel(t *testing.T) {
	ctx := t.Context()
	session := sessionAtPayment(t, "pi_1", testRate(t, "rate-1", 5.45, 4))

	gateway := new(MockPaymentGateway)
	gateway.On("Confirm", mock.Anything, "pi_1").
		Return(ports.PaymentConfirmation{Succeeded: true}, nil).Once()

	labels := new(MockLabelProvider)
	labels.On("IssueLabel", mock.Anything, session.From(), session.To(), *session.Parcel(), *session.SelectedRate(), session.BuyerID()).
		Return(ports.Label{TrackingNumber: "9400100000000000000001", LabelURL: "https://labels/1.pdf"}, nil).Once()

	shipmentRepo := new(MockShipmentRepository)
	shipmentRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	draftRepo := new(MockDraftRepository)
	draftRepo.On("Consume", mock.Anything, "pi_1").Return(testDraft(t, "pi_1"), nil).Once()
	draftRepo.On("Delete", mock.Anything, "pi_1").Return(nil).Once()

	factory := new(MockPurchaseUoWFactory)
	factory.On("Create").Return(consumeUoW(draftRepo)).Once()
	factory.On("Create").Return(settleUoW(shipmentRepo, draftRepo)).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishShipmentPurchased", mock.Anything, mock.Anything).Return(nil).Once()

	cmd, err := commands.NewConfirmPaymentCommand(session.ID())
	require.NoError(t, err)

	h := newConfirmHandler(newFakeSessionStore(session), gateway, labels, factory, publisher)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, checkout.StepComplete, session.Step())
	require.NotNil(t, session.ShipmentID())
	gateway.AssertExpectations(t)
	labels.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	draftRepo.AssertExpectations(t)
	factory.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestConfirmPaymentCommandHandler_Handle_DeclinedPaymentReturnsToRates(t *testing.T) {
	ctx := t.Context()
	session := sessionAtPayment(t, "pi_1", testRate(t, "rate-1", 5.45, 4))

	gateway := new(MockPaymentGateway)
	gateway.On("Confirm", mock.Anything, "pi_1").
		Return(ports.PaymentConfirmation{Succeeded: false, FailureReason: "card was declined"}, nil).Once()

	cmd, err := commands.NewConfirmPaymentCommand(session.ID())
	require.NoError(t, err)

	h := newConfirmHandler(newFakeSessionStore(session), gateway,
		new(MockLabelProvider), new(MockPurchaseUoWFactory), new(MockEventPublisher))
	err = h.Handle(ctx, cmd)

	var failure *checkout.PaymentFailedError
	require.ErrorAs(t, err, &failure)
	assert.Contains(t, failure.Reason, "declined")
	// selection survives; retry must price a fresh intent
	assert.Equal(t, checkout.StepPackageAndRates, session.Step())
	require.NotNil(t, session.SelectedRate())
	assert.Equal(t, "rate-1", session.SelectedRate().ID())
	assert.True(t, session.IntentIsStale())
}

func TestConfirmPaymentCommandHandler_Handle_TimeoutIsAmbiguous(t *testing.T) {
	ctx := t.Context()
	session := sessionAtPayment(t, "pi_1", testRate(t, "rate-1", 5.45, 4))

	gateway := new(MockPaymentGateway)
	gateway.On("Confirm", mock.Anything, "pi_1").
		Return(ports.PaymentConfirmation{}, ports.ErrNetworkOrTimeout).Once()

	labels := new(MockLabelProvider) // must never be called

	cmd, err := commands.NewConfirmPaymentCommand(session.ID())
	require.NoError(t, err)

	h := newConfirmHandler(newFakeSessionStore(session), gateway,
		labels, new(MockPurchaseUoWFactory), new(MockEventPublisher))
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, checkout.ErrPaymentTimedOut)
	// nothing is retried automatically: step and data stay put
	assert.Equal(t, checkout.StepPayment, session.Step())
	require.NotNil(t, session.SelectedRate())
	// the ambiguous intent is discarded; a retry must start payment anew
	assert.True(t, session.IntentIsStale())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	gateway.AssertNumberOfCalls(t, "Confirm", 1)
	labels.AssertNotCalled(t, "IssueLabel",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPaymentCommandHandler_Handle_SecondConfirmationIsDuplicate(t *testing.T) {
	ctx := t.Context()
	session := sessionAtPayment(t, "pi_1", testRate(t, "rate-1", 5.45, 4))
	require.NoError(t, session.BeginIssuance("pi_1")) // a confirmation already took the latch

	gateway := new(MockPaymentGateway)
	gateway.On("Confirm", mock.Anything, "pi_1").
		Return(ports.PaymentConfirmation{Succeeded: true}, nil).Once()

	cmd, err := commands.NewConfirmPaymentCommand(session.ID())
	require.NoError(t, err)

	h := newConfirmHandler(newFakeSessionStore(session), gateway,
		new(MockLabelProvider), new(MockPurchaseUoWFactory), new(MockEventPublisher))
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, checkout.ErrDuplicateIssuance)
}

func TestConfirmPaymentCommandHandler_Handle_LabelFailureAfterCapture(t *testing.T) {
	ctx := t.Context()
	session := sessionAtPayment(t, "pi_1", testRate(t, "rate-1", 5.45, 4))

	gateway := new(MockPaymentGateway)
	gateway.On("Confirm", mock.Anything, "pi_1").
		Return(ports.PaymentConfirmation{Succeeded: true}, nil).Twice()

	draftRepo := new(MockDraftRepository)
	draftRepo.On("Consume", mock.Anything, "pi_1").Return(testDraft(t, "pi_1"), nil).Once()
	factory := new(MockPurchaseUoWFactory)
	factory.On("Create").Return(consumeUoW(draftRepo)).Once()

	labels := new(MockLabelProvider)
	labels.On("IssueLabel", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(ports.Label{}, errors.New("carrier rejected the purchase")).Once()

	cmd, err := commands.NewConfirmPaymentCommand(session.ID())
	require.NoError(t, err)

	h := newConfirmHandler(newFakeSessionStore(session), gateway,
		labels, factory, new(MockEventPublisher))
	err = h.Handle(ctx, cmd)

	var failure *checkout.LabelIssuanceFailedError
	require.ErrorAs(t, err, &failure)

	// the latch stays taken: a blind retry must not risk a second issuance
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, checkout.ErrDuplicateIssuance)
	labels.AssertNumberOfCalls(t, "IssueLabel", 1)
}

func TestConfirmPaymentCommandHandler_Handle_RequiresCurrentIntent(t *testing.T) {
	ctx := t.Context()
	session := sessionAtRateSelection(t, testRate(t, "rate-1", 5.45, 4))
	require.NoError(t, session.SelectRate("rate-1"))
	require.NoError(t, session.AdvanceToPayment())
	// no intent attached yet

	cmd, err := commands.NewConfirmPaymentCommand(session.ID())
	require.NoError(t, err)

	h := newConfirmHandler(newFakeSessionStore(session), new(MockPaymentGateway),
		new(MockLabelProvider), new(MockPurchaseUoWFactory), new(MockEventPublisher))
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
}
