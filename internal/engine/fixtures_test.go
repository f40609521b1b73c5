package engine_test

import (
	"time"

	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"
)

var baseTime = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

// TeamFixture creates a team with a market
func TeamFixture(name string, multiplier, probability float64) models.Team {
	return models.Team{
		FullName:        name,
		ShortName:       name[:3],
		Odds:            map[string]models.NullInt{"opening": models.Int(100)},
		MoneyMultiplier: models.Float(multiplier),
		WinProbability:  models.Float(probability),
	}
}

// NoMarketTeam creates a team with neither a multiplier nor a probability
func NoMarketTeam(name string) models.Team {
	return models.Team{
		FullName: name,
		Odds:     map[string]models.NullInt{"bovada": {}},
	}
}

// MatchupFixture creates a test Matchup with sensible defaults
func MatchupFixture(overrides ...func(*models.Matchup)) models.Matchup {
	m := models.Matchup{
		Sport:    "nba",
		Datetime: baseTime,
		Team1:    TeamFixture("Indiana", 2.23, 0.45),
		Team2:    TeamFixture("Charlotte", 1.74, 0.58),
	}

	for _, override := range overrides {
		override(&m)
	}

	return m
}

func withSport(sport string) func(*models.Matchup) {
	return func(m *models.Matchup) { m.Sport = sport }
}

func withTime(t time.Time) func(*models.Matchup) {
	return func(m *models.Matchup) { m.Datetime = t }
}

func withTeams(t1, t2 models.Team) func(*models.Matchup) {
	return func(m *models.Matchup) {
		m.Team1 = t1
		m.Team2 = t2
	}
}

