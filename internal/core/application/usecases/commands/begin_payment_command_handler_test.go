package commands_test

import (
	"fmt"
	"testing"

	"shiplabel/internal/core/application/usecases/commands"
	"shiplabel/internal/core/domain/model/checkout"
	"shiplabel/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBeginPaymentCommandHandler_Handle_CreatesIntentAndDraft(t *testing.T) {
	ctx := t.Context()
	session := sessionAtRateSelection(t, testRate(t, "rate-1", 5.45, 4))
	require.NoError(t, session.SelectRate("rate-1"))

	gateway := new(MockPaymentGateway)
	gateway.On("CreateIntent", mock.Anything, int64(545), "usd", mock.Anything).
		Return(ports.PaymentIntent{ID: "pi_1", ClientSecret: "cs_1", AmountCents: 545, Currency: "usd"}, nil).Once()

	draftRepo := new(MockDraftRepository)
	uow := new(MockDraftUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DraftRepository").Return(draftRepo).Once(),
		draftRepo.On("Add", mock.Anything, mock.AnythingOfType("*checkout.Draft")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDraftUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewBeginPaymentCommand(session.ID())
	require.NoError(t, err)

	h := commands.NewBeginPaymentCommandHandler(newFakeSessionStore(session), gateway, factory)
	intent, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "pi_1", intent.ID)
	assert.Equal(t, checkout.StepPayment, session.Step())
	assert.Equal(t, "pi_1", session.IntentID())
	assert.False(t, session.IntentIsStale())
	gateway.AssertExpectations(t)
	draftRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestBeginPaymentCommandHandler_Handle_RetryReplacesIntentAndDraft(t *testing.T) {
	ctx := t.Context()
	session := sessionAtPayment(t, "pi_old", testRate(t, "rate-1", 5.45, 4))

	gateway := new(MockPaymentGateway)
	gateway.On("CreateIntent", mock.Anything, int64(545), "usd", mock.Anything).
		Return(ports.PaymentIntent{ID: "pi_new", ClientSecret: "cs_2", AmountCents: 545, Currency: "usd"}, nil).Once()

	draftRepo := new(MockDraftRepository)
	uow := new(MockDraftUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DraftRepository").Return(draftRepo).Once(),
		draftRepo.On("Delete", mock.Anything, "pi_old").Return(nil).Once(),
		draftRepo.On("Add", mock.Anything, mock.AnythingOfType("*checkout.Draft")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDraftUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewBeginPaymentCommand(session.ID())
	require.NoError(t, err)

	h := commands.NewBeginPaymentCommandHandler(newFakeSessionStore(session), gateway, factory)
	intent, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "pi_new", intent.ID)
	assert.Equal(t, "pi_new", session.IntentID())
	draftRepo.AssertExpectations(t)
}

func TestBeginPaymentCommandHandler_Handle_BoundsPaymentRetries(t *testing.T) {
	ctx := t.Context()
	session := sessionAtPayment(t, "pi_1", testRate(t, "rate-1", 5.45, 4))
	for i := 2; !session.PaymentAttemptsExhausted(); i++ {
		session.ExpireIntent()
		require.NoError(t, session.AttachIntent(fmt.Sprintf("pi_%d", i)))
	}

	gateway := new(MockPaymentGateway) // must never be reached

	cmd, err := commands.NewBeginPaymentCommand(session.ID())
	require.NoError(t, err)

	h := commands.NewBeginPaymentCommandHandler(
		newFakeSessionStore(session), gateway, new(MockDraftUoWFactory))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, checkout.ErrTooManyPaymentAttempts)
	assert.NotEmpty(t, session.LastError())
	gateway.AssertNotCalled(t, "CreateIntent",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBeginPaymentCommandHandler_Handle_RequiresSelectedRate(t *testing.T) {
	ctx := t.Context()
	session := sessionAtRateSelection(t, testRate(t, "rate-1", 5.45, 4)) // nothing selected

	cmd, err := commands.NewBeginPaymentCommand(session.ID())
	require.NoError(t, err)

	h := commands.NewBeginPaymentCommandHandler(
		newFakeSessionStore(session), new(MockPaymentGateway), new(MockDraftUoWFactory))
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestBeginPaymentCommandHandler_Handle_GatewayFaultKeepsSelection(t *testing.T) {
	ctx := t.Context()
	session := sessionAtRateSelection(t, testRate(t, "rate-1", 5.45, 4))
	require.NoError(t, session.SelectRate("rate-1"))

	gateway := new(MockPaymentGateway)
	gateway.On("CreateIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(ports.PaymentIntent{}, ports.ErrNetworkOrTimeout).Once()

	cmd, err := commands.NewBeginPaymentCommand(session.ID())
	require.NoError(t, err)

	h := commands.NewBeginPaymentCommandHandler(
		newFakeSessionStore(session), gateway, new(MockDraftUoWFactory))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, ports.ErrNetworkOrTimeout)
	require.NotNil(t, session.SelectedRate())
	assert.Equal(t, "rate-1", session.SelectedRate().ID())
}
