package models

import "time"

// Side identifies one team of a matchup
type Side string

const (
	SideTeam1 Side = "team_1"
	SideTeam2 Side = "team_2"
)

// Grade is the qualitative label for an expected ROI
type Grade string

const (
	GradePoor      Grade = "Poor"
	GradeOK        Grade = "OK"
	GradeGood      Grade = "Good"
	GradeGreat     Grade = "Great"
	GradeExcellent Grade = "Excellent"
)

// TeamValue is a team annotated with its figures at a given stake.
// The figures are null when they cannot be computed as finite numbers.
type TeamValue struct {
	Team
	ProfitOnWin    NullFloat64 `json:"profit_on_win"`
	ExpectedProfit NullFloat64 `json:"expected_profit"`
	ExpectedROI    NullFloat64 `json:"expected_roi"` // percent
	BestBook       string      `json:"best_book,omitempty"`
	BestPrice      *int        `json:"best_price,omitempty"` // American odds at BestBook
	BestMultiplier NullFloat64 `json:"best_multiplier"`      // gross payout per unit at BestPrice
}

// EvaluatedMatchup is a matchup ready for rendering
type EvaluatedMatchup struct {
	Sport        string    `json:"sport"`
	Datetime     time.Time `json:"datetime"`
	Team1        TeamValue `json:"team_1"`
	Team2        TeamValue `json:"team_2"`
	SelectedSide Side      `json:"selected_side"`
	Grade        Grade     `json:"grade,omitempty"` // grade of the selected side's expected ROI, empty when it has no figures
}

// Selected returns the annotated team on the selected side
func (m EvaluatedMatchup) Selected() TeamValue {
	if m.SelectedSide == SideTeam2 {
		return m.Team2
	}
	return m.Team1
}

// MatchupPage is one page of the filtered, ranked matchup list
type MatchupPage struct {
	Matchups      []EvaluatedMatchup `json:"matchups"`
	Stake         float64            `json:"stake"`
	SortBy        SortBy             `json:"sort"`
	DateBucket    DateBucket         `json:"date"`
	Page          int                `json:"page"`
	PerPage       int                `json:"per_page"`
	TotalMatchups int                `json:"total_matchups"` // after filtering
	TotalPages    int                `json:"total_pages"`
	FirstIndex    int                `json:"first_index"` // half-open [first, last) into the ranked list
	LastIndex     int                `json:"last_index"`
	Rejected      int                `json:"rejected,omitempty"` // malformed matchups skipped
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}
