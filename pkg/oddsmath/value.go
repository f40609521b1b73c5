package oddsmath

import (
	"errors"
	"fmt"
	"math"

	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"
)

// ErrInvalidStake is returned for a stake that is not a positive finite number
var ErrInvalidStake = errors.New("invalid stake")

// ValidateStake rejects stakes the calculator must never see.
// Stakes are never clamped.
func ValidateStake(stake float64) error {
	if math.IsNaN(stake) || math.IsInf(stake, 0) {
		return fmt.Errorf("%w: %v is not finite", ErrInvalidStake, stake)
	}
	if stake <= 0 {
		return fmt.Errorf("%w: %.2f must be positive", ErrInvalidStake, stake)
	}
	return nil
}

// ProfitOnWin returns the net profit if the team wins.
// stake * (multiplier - 1)
func ProfitOnWin(stake float64, team models.Team) float64 {
	return stake * (SanitizeMultiplier(team.MoneyMultiplier) - 1)
}

// ExpectedProfit returns the probability-weighted net profit.
// profitOnWin * p - stake * (1 - p)
func ExpectedProfit(stake float64, team models.Team) float64 {
	p := SanitizeProbability(team.WinProbability)
	return ProfitOnWin(stake, team)*p - stake*(1-p)
}

// ExpectedROI returns expected profit as a percentage of stake.
// Callers must validate the stake first.
func ExpectedROI(stake float64, team models.Team) float64 {
	return 100 * ExpectedProfit(stake, team) / stake
}
