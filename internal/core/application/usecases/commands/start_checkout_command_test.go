package commands_test

import (
	"testing"

	"shiplabel/internal/core/application/usecases/commands"
	"shiplabel/internal/core/domain/model/checkout"
	"shiplabel/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStartCheckoutCommand(t *testing.T) {
	t.Run("should create command with valid identifiers", func(t *testing.T) {
		sessionID := kernel.NewUUID()
		buyerID := kernel.NewUUID()

		cmd, err := commands.NewStartCheckoutCommand(sessionID, buyerID)

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.True(t, cmd.SessionID().IsEqual(sessionID))
		assert.True(t, cmd.BuyerID().IsEqual(buyerID))
	})

	t.Run("should fail with zero-value identifiers", func(t *testing.T) {
		_, err := commands.NewStartCheckoutCommand(kernel.UUID{}, kernel.NewUUID())
		require.Error(t, err)

		_, err = commands.NewStartCheckoutCommand(kernel.NewUUID(), kernel.UUID{})
		require.Error(t, err)
	})

	t.Run("should reject zero-value command", func(t *testing.T) {
		var cmd commands.StartCheckoutCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrStartCheckoutCommandIsNotConstructed)
	})
}

func TestStartCheckoutCommandHandler_Handle(t *testing.T) {
	t.Run("should open session at address step", func(t *testing.T) {
		ctx := t.Context()
		store := newFakeSessionStore()
		sessionID := kernel.NewUUID()
		cmd, err := commands.NewStartCheckoutCommand(sessionID, kernel.NewUUID())
		require.NoError(t, err)

		h := commands.NewStartCheckoutCommandHandler(store)
		require.NoError(t, h.Handle(ctx, cmd))

		session, err := store.Get(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, checkout.StepAddress, session.Step())
	})

	t.Run("should reject duplicate session id", func(t *testing.T) {
		ctx := t.Context()
		store := newFakeSessionStore()
		sessionID := kernel.NewUUID()
		cmd, err := commands.NewStartCheckoutCommand(sessionID, kernel.NewUUID())
		require.NoError(t, err)

		h := commands.NewStartCheckoutCommandHandler(store)
		require.NoError(t, h.Handle(ctx, cmd))
		require.Error(t, h.Handle(ctx, cmd))
	})
}
