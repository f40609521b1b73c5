// Package snapshot holds the matchup set produced by one fetch cycle.
// A snapshot is never modified after it is published; a new cycle
// replaces it wholesale.
package snapshot

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"
)

// ErrNotReady is returned before the first snapshot is published
var ErrNotReady = errors.New("no matchup snapshot loaded yet")

// Snapshot is an immutable set of matchups from one fetch cycle
type Snapshot struct {
	ID        uuid.UUID        `json:"id"`
	FetchedAt time.Time        `json:"fetched_at"`
	Matchups  []models.Matchup `json:"matchups"`
}

// New builds a snapshot with a fresh ID. The matchups are copied.
func New(matchups []models.Matchup, fetchedAt time.Time) *Snapshot {
	return &Snapshot{
		ID:        uuid.New(),
		FetchedAt: fetchedAt,
		Matchups:  append([]models.Matchup{}, matchups...),
	}
}

// BySport returns the snapshot's matchups for one sport, in stored order
func (s *Snapshot) BySport(sport string) []models.Matchup {
	out := []models.Matchup{}
	for _, m := range s.Matchups {
		if m.Sport == sport {
			out = append(out, m)
		}
	}
	return out
}

// Len returns the number of matchups
func (s *Snapshot) Len() int {
	return len(s.Matchups)
}

// Store publishes the current snapshot to concurrent readers
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Current returns the published snapshot or ErrNotReady
func (s *Store) Current() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotReady
	}
	return snap, nil
}

// Replace publishes a new snapshot built from matchups
func (s *Store) Replace(matchups []models.Matchup, fetchedAt time.Time) *Snapshot {
	snap := New(matchups, fetchedAt)
	s.current.Store(snap)
	return snap
}

// Restore publishes a previously built snapshot, e.g. one loaded from cache.
// It does nothing if a snapshot is already published.
func (s *Store) Restore(snap *Snapshot) bool {
	if snap == nil {
		return false
	}
	return s.current.CompareAndSwap(nil, snap)
}
