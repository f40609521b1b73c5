package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"
)

// ErrInvalidFilter is returned for an unknown date bucket or sort key
var ErrInvalidFilter = errors.New("invalid filter")

// Filter keeps matchups whose sport is active and whose date falls in the
// active bucket
type Filter struct {
	sports   map[string]struct{}
	bucket   models.DateBucket
	today    time.Time
	location *time.Location
}

// NewFilter creates a filter evaluated against now in loc.
// A nil loc means time.Local.
func NewFilter(state models.FilterState, now time.Time, loc *time.Location) (*Filter, error) {
	if err := validateBucket(state.DateBucket); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.Local
	}

	return &Filter{
		sports:   state.SportSet(),
		bucket:   state.DateBucket,
		today:    now.In(loc),
		location: loc,
	}, nil
}

// Keep reports whether a matchup passes both the sport and the date test
func (f *Filter) Keep(m models.Matchup) bool {
	if _, ok := f.sports[m.Sport]; !ok {
		return false
	}

	switch f.bucket {
	case models.DateToday:
		return f.isToday(m.Datetime)
	case models.DateFuture:
		return !f.isToday(m.Datetime)
	default:
		return true
	}
}

// Apply returns the matchups that pass Keep, in input order
func (f *Filter) Apply(matchups []models.Matchup) []models.Matchup {
	kept := make([]models.Matchup, 0, len(matchups))
	for _, m := range matchups {
		if f.Keep(m) {
			kept = append(kept, m)
		}
	}
	return kept
}

func (f *Filter) isToday(t time.Time) bool {
	y1, m1, d1 := t.In(f.location).Date()
	y2, m2, d2 := f.today.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func validateBucket(bucket models.DateBucket) error {
	switch bucket {
	case models.DateAll, models.DateToday, models.DateFuture:
		return nil
	default:
		return fmt.Errorf("%w: unknown date bucket %q", ErrInvalidFilter, bucket)
	}
}
