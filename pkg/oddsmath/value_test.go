package oddsmath_test

import (
	"errors"
	"math"
	"testing"

	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"
	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/oddsmath"
)

const tolerance = 1e-9

func team(multiplier, probability models.NullFloat64) models.Team {
	return models.Team{FullName: "Test", MoneyMultiplier: multiplier, WinProbability: probability}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestValidateStake(t *testing.T) {
	tests := []struct {
		name    string
		stake   float64
		wantErr bool
	}{
		{"Positive", 200, false},
		{"Fractional", 0.5, false},
		{"Zero", 0, true},
		{"Negative", -10, true},
		{"NaN", math.NaN(), true},
		{"Inf", math.Inf(1), true},
		{"Negative Inf", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := oddsmath.ValidateStake(tt.stake)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStake(%v) error = %v, wantErr %v", tt.stake, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, oddsmath.ErrInvalidStake) {
				t.Errorf("expected ErrInvalidStake, got %v", err)
			}
		})
	}
}

func TestSanitizeMultiplier(t *testing.T) {
	tests := []struct {
		name string
		in   models.NullFloat64
		want float64
	}{
		{"Present", models.Float(2.23), 2.23},
		{"Break-even", models.Float(1), 1},
		{"Null", models.NullFloat64{}, 0},
		{"NaN", models.NullFloat64{Float64: math.NaN(), Valid: true}, 0},
		{"Inf", models.NullFloat64{Float64: math.Inf(1), Valid: true}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := oddsmath.SanitizeMultiplier(tt.in); got != tt.want {
				t.Errorf("SanitizeMultiplier(%+v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpectedROI_ClosedForm(t *testing.T) {
	multipliers := []float64{0, 1, 1.1666, 1.7353, 2.0, 2.23, 5.25}
	probabilities := []float64{0, 0.1, 0.45, 0.5, 0.6, 0.857, 1}
	stakes := []float64{0.5, 1, 50, 200, 12345.67}

	for _, m := range multipliers {
		for _, p := range probabilities {
			want := 100*(m-1)*p - 100*(1-p)
			for _, stake := range stakes {
				got := oddsmath.ExpectedROI(stake, team(models.Float(m), models.Float(p)))
				if math.Abs(got-want) > 1e-6 {
					t.Errorf("ExpectedROI(stake=%v, m=%v, p=%v) = %v, want %v", stake, m, p, got, want)
				}
			}
		}
	}
}

func TestExpectedProfit_MissingMultiplier(t *testing.T) {
	stake := 200.0

	// Both missing: the full stake is lost in expectation
	got := oddsmath.ExpectedProfit(stake, team(models.NullFloat64{}, models.NullFloat64{}))
	if !almostEqual(got, -stake) {
		t.Errorf("expected profit = %v, want %v", got, -stake)
	}

	// Only the multiplier missing: profit on win collapses to -stake
	p := 0.3
	got = oddsmath.ExpectedProfit(stake, team(models.NullFloat64{}, models.Float(p)))
	want := -stake*p - stake*(1-p)
	if !almostEqual(got, want) {
		t.Errorf("expected profit = %v, want %v", got, want)
	}
	if got >= 0 {
		t.Errorf("expected profit must be negative without a market, got %v", got)
	}

	if pow := oddsmath.ProfitOnWin(stake, team(models.NullFloat64{}, models.Float(p))); pow != -stake {
		t.Errorf("profit on win = %v, want %v", pow, -stake)
	}
}

func TestExpectedProfit_Scenario(t *testing.T) {
	stake := 200.0
	teamA := team(models.Float(2.0), models.Float(0.60))
	teamB := team(models.Float(1.80), models.Float(0.45))

	tests := []struct {
		name           string
		team           models.Team
		profitOnWin    float64
		expectedProfit float64
		expectedROI    float64
	}{
		{"Team A", teamA, 200, 40, 20},
		{"Team B", teamB, 160, -38, -19},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := oddsmath.ProfitOnWin(stake, tt.team); math.Abs(got-tt.profitOnWin) > 1e-6 {
				t.Errorf("ProfitOnWin = %v, want %v", got, tt.profitOnWin)
			}
			if got := oddsmath.ExpectedProfit(stake, tt.team); math.Abs(got-tt.expectedProfit) > 1e-6 {
				t.Errorf("ExpectedProfit = %v, want %v", got, tt.expectedProfit)
			}
			if got := oddsmath.ExpectedROI(stake, tt.team); math.Abs(got-tt.expectedROI) > 1e-6 {
				t.Errorf("ExpectedROI = %v, want %v", got, tt.expectedROI)
			}
		})
	}
}

func TestExpectedROI_NoMarket(t *testing.T) {
	for _, stake := range []float64{1, 200, 5000} {
		got := oddsmath.ExpectedROI(stake, team(models.NullFloat64{}, models.NullFloat64{}))
		if !almostEqual(got, -100) {
			t.Errorf("ExpectedROI(stake=%v) = %v, want -100", stake, got)
		}
	}
}

func TestRounding(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{160.00000000000003, 160},
		{-37.999999999999, -38},
		{12.345, 12.35},
		{-19.004, -19},
	}

	for _, tt := range tests {
		if got := oddsmath.RoundCents(tt.in); got != tt.want {
			t.Errorf("RoundCents(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got := oddsmath.RoundPercent(tt.in); got != tt.want {
			t.Errorf("RoundPercent(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if got := oddsmath.RoundCents(math.Inf(1)); !math.IsInf(got, 1) {
		t.Errorf("RoundCents(+Inf) = %v", got)
	}
}
