package models

import "time"

// Team is one side of a matchup as delivered by the odds-aggregation service.
// Prices and probabilities are already computed upstream.
type Team struct {
	FullName        string             `json:"full_name"`
	ShortName       string             `json:"short_name"`
	Logo            *string            `json:"logo"`
	Odds            map[string]NullInt `json:"odds"`             // bookmaker_id -> American odds, null when the book has no price
	WinProbability  NullFloat64        `json:"win_probability"`  // [0,1], null when no market exists
	MoneyMultiplier NullFloat64        `json:"money_multiplier"` // gross payout per unit stake, null when no market exists
}

// Matchup is a two-sided event. Team order only matters for default display.
type Matchup struct {
	Sport    string    `json:"sport"`
	Datetime time.Time `json:"datetime"`
	Team1    Team      `json:"team_1"`
	Team2    Team      `json:"team_2"`
}

// DateBucket selects matchups relative to the current calendar date
type DateBucket string

const (
	DateAll    DateBucket = "all"
	DateToday  DateBucket = "today"
	DateFuture DateBucket = "future"
)

// SortBy is the ranking criterion for a matchup list
type SortBy string

const (
	SortSmartest SortBy = "smartest" // best expected profit across either side, descending
	SortSoonest  SortBy = "soonest"  // datetime ascending
	SortFarthest SortBy = "farthest" // datetime descending
)

// FilterState is the caller-owned view state consumed by the engine.
// It is never persisted by the service.
type FilterState struct {
	Sports     []string   `json:"sports"`
	DateBucket DateBucket `json:"date"`
	SortBy     SortBy     `json:"sort"`
	Stake      float64    `json:"stake"`
	Page       int        `json:"page"`
}

// SportSet returns the active sports as a lookup set
func (f FilterState) SportSet() map[string]struct{} {
	set := make(map[string]struct{}, len(f.Sports))
	for _, sport := range f.Sports {
		set[sport] = struct{}{}
	}
	return set
}
