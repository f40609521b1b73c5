package source

import (
	"fmt"
	"strings"
	"time"

	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"
)

// wireMatchup is one element of GET /api/odds/{sport}. Newer payloads carry
// an RFC 3339 datetime; older scrapers send a display date and time
// ("Friday November 19", "7:00pm") without a year.
type wireMatchup struct {
	Sport    string      `json:"sport"`
	Datetime *time.Time  `json:"datetime"`
	Date     string      `json:"date"`
	Time     string      `json:"time"`
	Team1    models.Team `json:"team_1"`
	Team2    models.Team `json:"team_2"`
}

func (w wireMatchup) toMatchup(sport string, now time.Time, loc *time.Location) (models.Matchup, error) {
	m := models.Matchup{
		Sport: w.Sport,
		Team1: w.Team1,
		Team2: w.Team2,
	}
	if m.Sport == "" {
		m.Sport = sport
	}

	switch {
	case w.Datetime != nil:
		m.Datetime = *w.Datetime
	case w.Date != "" && w.Time != "":
		dt, err := parseLegacyDatetime(w.Date, w.Time, now, loc)
		if err != nil {
			return m, err
		}
		m.Datetime = dt
	}

	return m, nil
}

// parseLegacyDatetime resolves a year-less date to the occurrence closest
// to now: within six months either side.
func parseLegacyDatetime(date, clock string, now time.Time, loc *time.Location) (time.Time, error) {
	clock = strings.ToLower(strings.TrimSpace(clock))
	if strings.HasSuffix(clock, "a") || strings.HasSuffix(clock, "p") {
		clock += "m"
	}

	// the weekday is dropped: without a year it cannot be checked
	fields := strings.Fields(date)
	if len(fields) == 3 {
		fields = fields[1:]
	}
	if len(fields) != 2 {
		return time.Time{}, fmt.Errorf("unrecognized date %q", date)
	}

	parsed, err := time.Parse("January 2 3:04pm", strings.Join(fields, " ")+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse legacy datetime: %w", err)
	}

	now = now.In(loc)
	dt := time.Date(now.Year(), parsed.Month(), parsed.Day(), parsed.Hour(), parsed.Minute(), 0, 0, loc)
	switch {
	case dt.Before(now.AddDate(0, -6, 0)):
		dt = dt.AddDate(1, 0, 0)
	case dt.After(now.AddDate(0, 6, 0)):
		dt = dt.AddDate(-1, 0, 0)
	}
	return dt, nil
}
