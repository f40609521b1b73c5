package engine

import (
	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"
	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/oddsmath"
)

// SelectSide returns the side with the higher expected profit at stake.
// Ties go to team_1.
func SelectSide(m models.Matchup, stake float64) models.Side {
	if oddsmath.ExpectedProfit(stake, m.Team1) >= oddsmath.ExpectedProfit(stake, m.Team2) {
		return models.SideTeam1
	}
	return models.SideTeam2
}

// Select returns the team on the selected side
func Select(m models.Matchup, stake float64) models.Team {
	if SelectSide(m, stake) == models.SideTeam2 {
		return m.Team2
	}
	return m.Team1
}

// BestExpectedProfit is the larger expected profit of the two sides
func BestExpectedProfit(m models.Matchup, stake float64) float64 {
	return max(oddsmath.ExpectedProfit(stake, m.Team1), oddsmath.ExpectedProfit(stake, m.Team2))
}
