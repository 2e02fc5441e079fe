package commands_test

import (
	"testing"
	"time"

	"shiplabel/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCleanupExpiredDraftsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	repo := new(MockDraftRepository)
	uow := new(MockDraftUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DraftRepository").Return(repo).Once(),
		repo.On("DeleteExpired", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
			// The cutoff must sit roughly one retention window in the past.
			return time.Since(cutoff) > 23*time.Hour && time.Since(cutoff) < 25*time.Hour
		})).Return(int64(3), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDraftUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewCleanupExpiredDraftsCommand(24 * time.Hour)
	require.NoError(t, err)

	h := commands.NewCleanupExpiredDraftsCommandHandler(factory)
	deleted, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestNewCleanupExpiredDraftsCommand_RequiresPositiveRetention(t *testing.T) {
	_, err := commands.NewCleanupExpiredDraftsCommand(0)
	require.Error(t, err)
}
