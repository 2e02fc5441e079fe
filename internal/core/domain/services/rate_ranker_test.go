package services_test

import (
	"testing"

	"shiplabel/internal/core/domain/model/rate"
	"shiplabel/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offer(t *testing.T, id string, amount float64, days int) rate.Rate {
	t.Helper()
	r, err := rate.NewRate(id, "USPS", "Service "+id, amount, "USD", days, "")
	require.NoError(t, err)
	return r
}

func TestRateRanker_Rank(t *testing.T) {
	ranker := services.NewRateRanker()

	t.Run("should sort ascending by price and flag cheapest as best value", func(t *testing.T) {
		ranked := ranker.Rank([]rate.Rate{
			offer(t, "mid", 7.50, 2),
			offer(t, "cheap", 5.45, 3),
			offer(t, "expensive", 12.00, 1),
		})

		require.Len(t, ranked, 3)
		assert.Equal(t, "cheap", ranked[0].ID())
		assert.Equal(t, "mid", ranked[1].ID())
		assert.Equal(t, "expensive", ranked[2].ID())
		assert.True(t, ranked[0].BestValue())
		assert.False(t, ranked[1].BestValue())
		assert.False(t, ranked[2].BestValue())
	})

	t.Run("should flag minimum transit offer as fastest", func(t *testing.T) {
		ranked := ranker.Rank([]rate.Rate{
			offer(t, "slow", 5.45, 3),
			offer(t, "quick", 12.00, 1),
		})

		assert.False(t, ranked[0].Fastest())
		assert.True(t, ranked[1].Fastest())
	})

	t.Run("should flag all transit ties as fastest", func(t *testing.T) {
		ranked := ranker.Rank([]rate.Rate{
			offer(t, "a", 5.45, 2),
			offer(t, "b", 7.50, 2),
			offer(t, "c", 12.00, 4),
		})

		assert.True(t, ranked[0].Fastest())
		assert.True(t, ranked[1].Fastest())
		assert.False(t, ranked[2].Fastest())
	})

	t.Run("should not mutate the input slice", func(t *testing.T) {
		input := []rate.Rate{
			offer(t, "mid", 7.50, 2),
			offer(t, "cheap", 5.45, 3),
		}

		_ = ranker.Rank(input)

		assert.Equal(t, "mid", input[0].ID())
		assert.False(t, input[1].BestValue())
	})

	t.Run("should return nil for empty input", func(t *testing.T) {
		assert.Nil(t, ranker.Rank(nil))
	})
}
