package services

import (
	"sort"

	"shiplabel/internal/core/domain/model/rate"

	"github.com/samber/lo"
)

// RateRanker is a domain service that orders carrier offers for display and
// derives the comparison flags shown next to them.
//
// Ranking rules:
//   - Offers are sorted ascending by total price
//   - The cheapest offer is flagged "best value"
//   - Every offer sharing the minimum transit-days value is flagged "fastest"
//     (ties all flagged)
//
// Rank never recomputes prices or dates; offers stay exactly as quoted.
type RateRanker struct{}

// NewRateRanker creates a new RateRanker instance.
func NewRateRanker() RateRanker {
	return RateRanker{}
}

// Rank returns a new slice with the offers sorted and flagged.
// An empty input yields an empty output; deciding that an empty list means
// "no service available" is the caller's concern.
func (RateRanker) Rank(rates []rate.Rate) []rate.Rate {
	if len(rates) == 0 {
		return nil
	}

	ranked := make([]rate.Rate, len(rates))
	copy(ranked, rates)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount() < ranked[j].Amount()
	})

	fastestDays := lo.MinBy(ranked, func(a, b rate.Rate) bool {
		return a.DeliveryDays() < b.DeliveryDays()
	}).DeliveryDays()

	for i := range ranked {
		ranked[i] = ranked[i].Flagged(i == 0, ranked[i].DeliveryDays() == fastestDays)
	}

	return ranked
}
