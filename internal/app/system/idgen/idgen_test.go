package idgen_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/placementhub/internal/app/system/clock"
	"github.com/dalemusser/placementhub/internal/app/system/idgen"
	"github.com/google/uuid"
)

func TestNextCandidacyID_Format(t *testing.T) {
	g := idgen.New(clock.NewFixed(time.Date(2026, time.March, 7, 10, 0, 0, 0, time.UTC)))

	if got := g.NextCandidacyID(); got != "APP-20260307-0001" {
		t.Errorf("first id = %q, want APP-20260307-0001", got)
	}
	if got := g.NextCandidacyID(); got != "APP-20260307-0002" {
		t.Errorf("second id = %q, want APP-20260307-0002", got)
	}
}

func TestNextCandidacyID_CounterSurvivesDayChange(t *testing.T) {
	c := clock.NewFixed(time.Date(2026, time.March, 7, 23, 0, 0, 0, time.UTC))
	g := idgen.New(c)

	g.NextCandidacyID()
	c.Advance(2 * time.Hour)

	if got := g.NextCandidacyID(); got != "APP-20260308-0002" {
		t.Errorf("id after midnight = %q, want APP-20260308-0002", got)
	}
}

func TestNextCandidacyID_ConcurrentUnique(t *testing.T) {
	g := idgen.New(clock.System{})
	const workers, per = 8, 250

	var mu sync.Mutex
	seen := make(map[string]bool, workers*per)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < per; i++ {
				id := g.NextCandidacyID()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*per {
		t.Errorf("got %d unique ids, want %d", len(seen), workers*per)
	}
	for id := range seen {
		if !strings.HasPrefix(id, "APP-") {
			t.Fatalf("unexpected id %q", id)
		}
	}
}

func TestNextPostingID_Random(t *testing.T) {
	g := idgen.New(clock.System{})
	a, b := g.NextPostingID(), g.NextPostingID()
	if a == uuid.Nil || b == uuid.Nil {
		t.Fatal("expected non-nil uuids")
	}
	if a == b {
		t.Error("expected distinct posting ids")
	}
}
