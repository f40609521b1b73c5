package engine_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/XavierBriggs/fortuna/services/omnibet/internal/engine"
	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"
)

func TestFilter_SportAndDate(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	now := time.Date(2026, time.October, 19, 10, 0, 0, 0, loc)

	todayNBA := MatchupFixture(withTime(time.Date(2026, time.October, 19, 23, 30, 0, 0, loc)))
	// 02:00 UTC on the 20th is still the 19th in EST
	lateNBA := MatchupFixture(withTime(time.Date(2026, time.October, 20, 2, 0, 0, 0, time.UTC)))
	tomorrowNBA := MatchupFixture(withTime(time.Date(2026, time.October, 20, 19, 0, 0, 0, loc)))
	todayNHL := MatchupFixture(withSport("nhl"), withTime(now))
	todayUFC := MatchupFixture(withSport("ufc"), withTime(now))

	all := []models.Matchup{todayNBA, lateNBA, tomorrowNBA, todayNHL, todayUFC}

	tests := []struct {
		name   string
		sports []string
		bucket models.DateBucket
		want   []models.Matchup
	}{
		{"All dates", []string{"nba", "nhl"}, models.DateAll, []models.Matchup{todayNBA, lateNBA, tomorrowNBA, todayNHL}},
		{"Today", []string{"nba", "nhl"}, models.DateToday, []models.Matchup{todayNBA, lateNBA, todayNHL}},
		{"Future", []string{"nba", "nhl"}, models.DateFuture, []models.Matchup{tomorrowNBA}},
		{"Single sport", []string{"ufc"}, models.DateAll, []models.Matchup{todayUFC}},
		{"No sports", nil, models.DateAll, []models.Matchup{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := engine.NewFilter(models.FilterState{Sports: tt.sports, DateBucket: tt.bucket}, now, loc)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := f.Apply(all)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply kept %d matchups, want %d", len(got), len(tt.want))
			}
		})
	}
}

func TestFilter_FutureIsComplementOfToday(t *testing.T) {
	now := baseTime
	past := MatchupFixture(withTime(now.Add(-48 * time.Hour)))

	f, err := engine.NewFilter(models.FilterState{Sports: []string{"nba"}, DateBucket: models.DateFuture}, now, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !f.Keep(past) {
		t.Error("expected a past matchup to fall in the future bucket")
	}
}

func TestFilter_Idempotent(t *testing.T) {
	matchups := []models.Matchup{
		MatchupFixture(),
		MatchupFixture(withSport("nhl")),
		MatchupFixture(withTime(baseTime.Add(72 * time.Hour))),
		MatchupFixture(withSport("mlb")),
	}
	state := models.FilterState{Sports: []string{"nba", "nhl"}, DateBucket: models.DateToday}

	f, err := engine.NewFilter(state, baseTime, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	once := f.Apply(matchups)
	twice := f.Apply(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filtering twice changed the result: %d vs %d", len(once), len(twice))
	}
}

func TestNewFilter_UnknownBucket(t *testing.T) {
	_, err := engine.NewFilter(models.FilterState{DateBucket: "tomorrow"}, baseTime, time.UTC)
	if !errors.Is(err, engine.ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}
}
