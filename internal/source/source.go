// Package source fetches matchups from the upstream odds-aggregation
// service. Prices, win probabilities and money multipliers arrive
// precomputed; nothing here derives them.
package source

import (
	"context"
	"errors"

	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"
)

// ErrUpstreamStatus is returned when the odds service answers with a non-2xx status
var ErrUpstreamStatus = errors.New("upstream returned non-success status")

// MatchupSource returns the current matchups for one sport
type MatchupSource interface {
	FetchMatchups(ctx context.Context, sport string) ([]models.Matchup, error)
}
