package source

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/XavierBriggs/fortuna/services/omnibet/internal/engine"
	"github.com/XavierBriggs/fortuna/services/omnibet/internal/metrics"
	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"
)

const maxConcurrentFetches = 4

// Result is the outcome of one multi-sport fetch
type Result struct {
	Matchups []models.Matchup            // valid matchups, in configured sport order
	PerSport map[string][]models.Matchup // valid matchups keyed by requested sport
	Failed   map[string]error            // sports whose fetch failed
	Rejected int                         // malformed matchups dropped
}

// Aggregator fetches every configured sport concurrently
type Aggregator struct {
	source  MatchupSource
	sports  []string
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewAggregator creates a new aggregator
func NewAggregator(src MatchupSource, sports []string, m *metrics.Metrics, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		source:  src,
		sports:  append([]string(nil), sports...),
		metrics: m,
		logger:  logger,
	}
}

// Sports returns the configured sports in order
func (a *Aggregator) Sports() []string {
	return append([]string(nil), a.sports...)
}

// Aggregate fetches all sports. A failing sport does not abort the others;
// an error is returned only when every sport failed.
func (a *Aggregator) Aggregate(ctx context.Context) (*Result, error) {
	perSport := make([][]models.Matchup, len(a.sports))
	errs := make([]error, len(a.sports))

	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)

	for i, sport := range a.sports {
		i, sport := i, sport
		g.Go(func() error {
			matchups, err := a.source.FetchMatchups(ctx, sport)
			if err != nil {
				errs[i] = err
				return nil
			}
			perSport[i] = matchups
			return nil
		})
	}
	g.Wait()

	result := &Result{
		Matchups: []models.Matchup{},
		PerSport: map[string][]models.Matchup{},
		Failed:   map[string]error{},
	}

	for i, sport := range a.sports {
		if errs[i] != nil {
			result.Failed[sport] = errs[i]
			a.logger.Error("sport fetch failed", zap.String("sport", sport), zap.Error(errs[i]))
			continue
		}

		kept := []models.Matchup{}
		for _, m := range perSport[i] {
			if err := engine.ValidateMatchup(m); err != nil {
				result.Rejected++
				a.logger.Warn("dropping matchup",
					zap.String("sport", sport),
					zap.Time("datetime", m.Datetime),
					zap.String("team_1", m.Team1.FullName),
					zap.String("team_2", m.Team2.FullName),
					zap.Error(err))
				continue
			}
			kept = append(kept, m)
		}
		result.PerSport[sport] = kept
		result.Matchups = append(result.Matchups, kept...)
	}

	a.metrics.RecordRejected("malformed", result.Rejected)

	if len(a.sports) > 0 && len(result.Failed) == len(a.sports) {
		return nil, fmt.Errorf("all %d sports failed: %w", len(a.sports), errors.Join(errs...))
	}

	return result, nil
}
