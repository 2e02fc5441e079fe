package commands_test

import (
	"testing"

	"shiplabel/internal/core/application/usecases/commands"
	"shiplabel/internal/core/domain/model/checkout"
	"shiplabel/internal/core/domain/model/rate"
	"shiplabel/internal/core/domain/services"
	"shiplabel/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFetchRatesCommandHandler_Handle_RanksAndStores(t *testing.T) {
	ctx := t.Context()
	session := sessionAtPackageStep(t)
	require.NoError(t, session.SetParcel(testParcel(t)))

	fetched := []rate.Rate{
		testRate(t, "rate-priority", 7.50, 2),
		testRate(t, "rate-ground", 5.45, 4),
		testRate(t, "rate-express", 12.00, 1),
	}

	shopper := new(MockRateShopper)
	shopper.On("FetchRates", mock.Anything, session.From(), session.To(), *session.Parcel()).
		Return(fetched, nil).Once()

	cmd, err := commands.NewFetchRatesCommand(session.ID())
	require.NoError(t, err)

	h := commands.NewFetchRatesCommandHandler(newFakeSessionStore(session), shopper, services.NewRateRanker())
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	stored := session.Rates()
	require.Len(t, stored, 3)
	// ranked cheapest-first, with derived display flags
	assert.Equal(t, "rate-ground", stored[0].ID())
	assert.True(t, stored[0].BestValue())
	assert.Equal(t, "rate-express", stored[2].ID())
	assert.True(t, stored[2].Fastest())
	shopper.AssertExpectations(t)
}

func TestFetchRatesCommandHandler_Handle_EmptyListIsBusinessOutcome(t *testing.T) {
	ctx := t.Context()
	session := sessionAtPackageStep(t)
	require.NoError(t, session.SetParcel(testParcel(t)))

	shopper := new(MockRateShopper)
	shopper.On("FetchRates", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]rate.Rate{}, nil).Once()

	cmd, err := commands.NewFetchRatesCommand(session.ID())
	require.NoError(t, err)

	h := commands.NewFetchRatesCommandHandler(newFakeSessionStore(session), shopper, services.NewRateRanker())
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, checkout.ErrNoRatesAvailable)
	assert.Empty(t, session.Rates())
}

func TestFetchRatesCommandHandler_Handle_TransportFaultKeepsPreviousRates(t *testing.T) {
	ctx := t.Context()
	previous := testRate(t, "rate-1", 6.10, 3)
	session := sessionAtRateSelection(t, previous)

	shopper := new(MockRateShopper)
	shopper.On("FetchRates", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, ports.ErrNetworkOrTimeout).Once()

	cmd, err := commands.NewFetchRatesCommand(session.ID())
	require.NoError(t, err)

	h := commands.NewFetchRatesCommandHandler(newFakeSessionStore(session), shopper, services.NewRateRanker())
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, ports.ErrNetworkOrTimeout)
	require.Len(t, session.Rates(), 1)
	assert.Equal(t, "rate-1", session.Rates()[0].ID())
	assert.NotEmpty(t, session.LastError())
}

func TestFetchRatesCommandHandler_Handle_RequiresPackageDetails(t *testing.T) {
	ctx := t.Context()
	session := sessionAtPackageStep(t) // no parcel submitted yet

	cmd, err := commands.NewFetchRatesCommand(session.ID())
	require.NoError(t, err)

	h := commands.NewFetchRatesCommandHandler(newFakeSessionStore(session), new(MockRateShopper), services.NewRateRanker())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
}
