// Package engine ranks two-sided matchups by expected value at a stake and
// slices the result into pages for display.
//
// Every function is a deterministic function of its inputs. An Engine holds
// only configuration and is safe for concurrent use.
package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"
	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/oddsmath"
)

// Config holds engine configuration
type Config struct {
	MatchupsPerPage int
	Location        *time.Location   // calendar used for the today/future buckets
	Now             func() time.Time // defaults to time.Now
}

// Engine turns a matchup collection and a filter state into a page
type Engine struct {
	paginator *Paginator
	location  *time.Location
	now       func() time.Time
}

// New creates an engine
func New(cfg Config) *Engine {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Engine{
		paginator: NewPaginator(cfg.MatchupsPerPage),
		location:  loc,
		now:       now,
	}
}

// PerPage returns the configured page size
func (e *Engine) PerPage() int {
	return e.paginator.PerPage()
}

// Evaluate filters, ranks and paginates matchups, then annotates the page
// with per-team figures, the selected side and its grade. The input slice
// is never modified.
func (e *Engine) Evaluate(matchups []models.Matchup, state models.FilterState) (*models.MatchupPage, error) {
	if err := oddsmath.ValidateStake(state.Stake); err != nil {
		return nil, err
	}
	if state.Page < 1 {
		return nil, fmt.Errorf("%w: %d must be >= 1", ErrInvalidPage, state.Page)
	}

	filter, err := NewFilter(state, e.now(), e.location)
	if err != nil {
		return nil, err
	}

	valid, rejected := DropMalformed(matchups)

	ranked, err := Rank(filter.Apply(valid), state.SortBy, state.Stake)
	if err != nil {
		return nil, err
	}

	first, last, err := e.paginator.Bounds(len(ranked), state.Page)
	if err != nil {
		return nil, err
	}

	evaluated := make([]models.EvaluatedMatchup, 0, last-first)
	for _, m := range ranked[first:last] {
		evaluated = append(evaluated, annotate(m, state.Stake))
	}

	return &models.MatchupPage{
		Matchups:      evaluated,
		Stake:         state.Stake,
		SortBy:        state.SortBy,
		DateBucket:    state.DateBucket,
		Page:          state.Page,
		PerPage:       e.paginator.PerPage(),
		TotalMatchups: len(ranked),
		TotalPages:    e.paginator.TotalPages(len(ranked)),
		FirstIndex:    first,
		LastIndex:     last,
		Rejected:      rejected,
	}, nil
}

// EvaluateMatchup annotates a single matchup at stake
func EvaluateMatchup(m models.Matchup, stake float64) (models.EvaluatedMatchup, error) {
	if err := oddsmath.ValidateStake(stake); err != nil {
		return models.EvaluatedMatchup{}, err
	}
	if err := ValidateMatchup(m); err != nil {
		return models.EvaluatedMatchup{}, err
	}
	return annotate(m, stake), nil
}

func annotate(m models.Matchup, stake float64) models.EvaluatedMatchup {
	out := models.EvaluatedMatchup{
		Sport:        m.Sport,
		Datetime:     m.Datetime,
		Team1:        teamValue(m.Team1, stake),
		Team2:        teamValue(m.Team2, stake),
		SelectedSide: SelectSide(m, stake),
	}
	if roi := out.Selected().ExpectedROI; roi.Valid {
		out.Grade = GradeROI(roi.Float64)
	}
	return out
}

// teamValue computes a team's figures at stake. Figures that overflow to a
// non-finite value are left null together so a team is never half-annotated.
func teamValue(t models.Team, stake float64) models.TeamValue {
	tv := models.TeamValue{Team: t}

	profit := oddsmath.ProfitOnWin(stake, t)
	expected := oddsmath.ExpectedProfit(stake, t)
	roi := oddsmath.ExpectedROI(stake, t)
	if finite(profit) && finite(expected) && finite(roi) {
		tv.ProfitOnWin = models.Float(profit)
		tv.ExpectedProfit = models.Float(expected)
		tv.ExpectedROI = models.Float(roi)
	}

	if book, price, ok := oddsmath.BestPrice(t.Odds); ok {
		tv.BestBook = book
		tv.BestPrice = &price
		tv.BestMultiplier = models.Float(oddsmath.AmericanToMultiplier(t.Odds[book]))
	}
	return tv
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
