package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/XavierBriggs/fortuna/services/omnibet/internal/engine"
	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"
	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/oddsmath"
)

// matchupsResponse is a page plus the snapshot it was computed from
type matchupsResponse struct {
	*models.MatchupPage
	SnapshotID string    `json:"snapshot_id"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// EvaluateRequest is the body of POST /api/v1/evaluate
type EvaluateRequest struct {
	Stake   *float64       `json:"stake"` // defaults to the configured stake
	Matchup models.Matchup `json:"matchup"`
}

// GetMatchups returns one page of filtered, ranked matchups
// Query params: sports (comma separated), date, sort, stake, page
func (h *Handler) GetMatchups(w http.ResponseWriter, r *http.Request) {
	state, err := h.parseFilterState(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), err)
		return
	}

	snap, err := h.snapshots.Current()
	if err != nil {
		h.respondError(w, statusFor(err), "matchups not loaded yet", err)
		return
	}

	page, err := h.engine.Evaluate(snap.Matchups, state)
	if err != nil {
		h.respondError(w, statusFor(err), err.Error(), err)
		return
	}
	h.metrics.RecordEvaluation(string(state.SortBy))

	roundPage(page)
	h.respondJSON(w, http.StatusOK, matchupsResponse{
		MatchupPage: page,
		SnapshotID:  snap.ID.String(),
		FetchedAt:   snap.FetchedAt,
	})
}

// EvaluateMatchup annotates a single caller-supplied matchup at a stake
func (h *Handler) EvaluateMatchup(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err), err)
		return
	}

	stake := h.defaultStake
	if req.Stake != nil {
		stake = *req.Stake
	}

	evaluated, err := engine.EvaluateMatchup(req.Matchup, stake)
	if err != nil {
		h.respondError(w, statusFor(err), err.Error(), err)
		return
	}

	roundMatchup(&evaluated)
	h.respondJSON(w, http.StatusOK, evaluated)
}

// parseFilterState builds the filter state from query parameters, applying
// defaults for anything omitted. Value checks are left to the engine.
func (h *Handler) parseFilterState(r *http.Request) (models.FilterState, error) {
	q := r.URL.Query()

	state := models.FilterState{
		Sports:     h.sports,
		DateBucket: models.DateAll,
		SortBy:     models.SortSmartest,
		Stake:      h.defaultStake,
		Page:       1,
	}

	if q.Has("sports") {
		state.Sports = []string{}
		for _, sport := range strings.Split(q.Get("sports"), ",") {
			if sport = strings.ToLower(strings.TrimSpace(sport)); sport != "" {
				state.Sports = append(state.Sports, sport)
			}
		}
	}

	if date := q.Get("date"); date != "" {
		state.DateBucket = models.DateBucket(strings.ToLower(date))
	}

	if sortBy := q.Get("sort"); sortBy != "" {
		state.SortBy = models.SortBy(strings.ToLower(sortBy))
	}

	if raw := q.Get("stake"); raw != "" {
		stake, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return state, fmt.Errorf("invalid stake %q", raw)
		}
		state.Stake = stake
	}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return state, fmt.Errorf("invalid page %q", raw)
		}
		state.Page = page
	}

	return state, nil
}

// roundPage rounds money to cents and ROI to hundredths of a percent.
// Grades and selection were computed on unrounded figures.
func roundPage(page *models.MatchupPage) {
	for i := range page.Matchups {
		roundMatchup(&page.Matchups[i])
	}
}

func roundMatchup(m *models.EvaluatedMatchup) {
	roundTeam(&m.Team1)
	roundTeam(&m.Team2)
}

func roundTeam(t *models.TeamValue) {
	if !t.ExpectedROI.Valid {
		return
	}
	t.ProfitOnWin.Float64 = oddsmath.RoundCents(t.ProfitOnWin.Float64)
	t.ExpectedProfit.Float64 = oddsmath.RoundCents(t.ExpectedProfit.Float64)
	t.ExpectedROI.Float64 = oddsmath.RoundPercent(t.ExpectedROI.Float64)
}
