package oddsmath

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundCents rounds a dollar amount to the cent
func RoundCents(v float64) float64 {
	return round(v, 2)
}

// RoundPercent rounds a percentage to 2 decimal places (12.3456% → 12.35%)
func RoundPercent(v float64) float64 {
	return round(v, 2)
}

func round(v float64, places int32) float64 {
	// decimal panics on NaN and Inf
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
