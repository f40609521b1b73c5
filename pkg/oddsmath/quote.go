package oddsmath

import (
	"math"

	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"
)

// NoMarketMultiplier stands in for a missing payout multiplier. With it a
// team's profit on win is -stake, so its expected profit is never positive.
const NoMarketMultiplier = 0.0

// SanitizeMultiplier is the single point where missing prices are normalized
// before any arithmetic.
func SanitizeMultiplier(m models.NullFloat64) float64 {
	if !m.Valid || math.IsNaN(m.Float64) || math.IsInf(m.Float64, 0) {
		return NoMarketMultiplier
	}
	return m.Float64
}

// SanitizeProbability treats an unknown win probability as 0
func SanitizeProbability(p models.NullFloat64) float64 {
	if !p.Valid || math.IsNaN(p.Float64) || math.IsInf(p.Float64, 0) {
		return 0
	}
	return p.Float64
}
