package engine

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"
)

// Rank returns a new slice ordered by sortBy. The sort is stable, so equal
// keys keep their input order.
func Rank(matchups []models.Matchup, sortBy models.SortBy, stake float64) ([]models.Matchup, error) {
	ranked := slices.Clone(matchups)

	switch sortBy {
	case models.SortSmartest:
		// one key per matchup, not per comparison
		keys := make([]float64, len(ranked))
		order := make([]int, len(ranked))
		for i := range ranked {
			order[i] = i
			keys[i] = BestExpectedProfit(ranked[i], stake)
		}
		slices.SortStableFunc(order, func(a, b int) int {
			return cmp.Compare(keys[b], keys[a])
		})
		out := make([]models.Matchup, len(order))
		for i, j := range order {
			out[i] = ranked[j]
		}
		return out, nil

	case models.SortSoonest:
		slices.SortStableFunc(ranked, func(a, b models.Matchup) int {
			return a.Datetime.Compare(b.Datetime)
		})
		return ranked, nil

	case models.SortFarthest:
		slices.SortStableFunc(ranked, func(a, b models.Matchup) int {
			return b.Datetime.Compare(a.Datetime)
		})
		return ranked, nil

	default:
		return nil, fmt.Errorf("%w: unknown sort %q", ErrInvalidFilter, sortBy)
	}
}
