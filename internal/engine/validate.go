package engine

import (
	"errors"
	"fmt"

	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"
)

// ErrMalformedMatchup marks a matchup missing the fields ranking depends on
var ErrMalformedMatchup = errors.New("malformed matchup")

// ValidateMatchup checks that a matchup is structurally complete
func ValidateMatchup(m models.Matchup) error {
	if m.Sport == "" {
		return fmt.Errorf("%w: missing sport", ErrMalformedMatchup)
	}
	if m.Datetime.IsZero() {
		return fmt.Errorf("%w: missing datetime", ErrMalformedMatchup)
	}
	if m.Team1.FullName == "" {
		return fmt.Errorf("%w: missing team_1", ErrMalformedMatchup)
	}
	if m.Team2.FullName == "" {
		return fmt.Errorf("%w: missing team_2", ErrMalformedMatchup)
	}
	return nil
}

// DropMalformed returns the structurally complete matchups and the number
// that were skipped. The input is not modified.
func DropMalformed(matchups []models.Matchup) ([]models.Matchup, int) {
	valid := make([]models.Matchup, 0, len(matchups))
	for _, m := range matchups {
		if ValidateMatchup(m) != nil {
			continue
		}
		valid = append(valid, m)
	}
	return valid, len(matchups) - len(valid)
}
