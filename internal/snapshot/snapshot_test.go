package snapshot_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/XavierBriggs/fortuna/services/omnibet/internal/snapshot"
	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"
)

var fetchedAt = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func matchups() []models.Matchup {
	return []models.Matchup{
		{Sport: "nba", Team1: models.Team{FullName: "Indiana"}},
		{Sport: "nhl", Team1: models.Team{FullName: "Toronto"}},
		{Sport: "nba", Team1: models.Team{FullName: "Boston"}},
	}
}

func TestStore_NotReady(t *testing.T) {
	store := snapshot.NewStore()
	if _, err := store.Current(); !errors.Is(err, snapshot.ErrNotReady) {
		t.Fatalf("Expected ErrNotReady, got %v", err)
	}
}

func TestStore_Replace(t *testing.T) {
	store := snapshot.NewStore()
	input := matchups()

	first := store.Replace(input, fetchedAt)
	input[0].Sport = "mutated"

	current, err := store.Current()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if current.ID != first.ID {
		t.Error("Expected current snapshot to be the one just published")
	}
	if current.Matchups[0].Sport != "nba" {
		t.Error("snapshot must not alias the caller's slice")
	}

	second := store.Replace(matchups()[:1], fetchedAt.Add(time.Minute))
	if second.ID == first.ID {
		t.Error("Expected a new ID per fetch cycle")
	}
	if current.Len() != 3 {
		t.Error("replacing must not modify a snapshot held by a reader")
	}
}

func TestStore_Restore(t *testing.T) {
	store := snapshot.NewStore()
	cached := &snapshot.Snapshot{ID: uuid.New(), FetchedAt: fetchedAt, Matchups: matchups()}

	if !store.Restore(cached) {
		t.Fatal("Expected restore into empty store to succeed")
	}
	if store.Restore(snapshot.New(nil, fetchedAt)) {
		t.Error("Expected restore over a published snapshot to be ignored")
	}
	if store.Restore(nil) {
		t.Error("Expected nil restore to be ignored")
	}

	current, _ := store.Current()
	if current.ID != cached.ID {
		t.Error("Expected cached snapshot to remain current")
	}
}

func TestSnapshot_BySport(t *testing.T) {
	snap := snapshot.New(matchups(), fetchedAt)

	nba := snap.BySport("nba")
	if len(nba) != 2 || nba[0].Team1.FullName != "Indiana" || nba[1].Team1.FullName != "Boston" {
		t.Errorf("unexpected nba matchups: %+v", nba)
	}
	if got := snap.BySport("ufc"); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", got)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := snapshot.NewStore()
	store.Replace(matchups(), fetchedAt)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Replace(matchups(), fetchedAt)
		}()
		go func() {
			defer wg.Done()
			snap, err := store.Current()
			if err != nil || snap.Len() != 3 {
				t.Errorf("reader saw incomplete snapshot: %v", err)
			}
		}()
	}
	wg.Wait()
}
