// Package idgen generates record identifiers.
//
// Candidacy ids are human-readable (APP-YYYYMMDD-####) and come from a
// mutex-guarded monotonic counter owned by a Generator instance, which is
// injected into the services that need it. Posting ids are random UUIDs.
package idgen

import (
	"fmt"
	"sync"

	"github.com/dalemusser/placementhub/internal/app/system/clock"
	"github.com/google/uuid"
)

// Candidacies hands out candidacy ids.
type Candidacies interface {
	NextCandidacyID() string
}

// Postings hands out posting ids.
type Postings interface {
	NextPostingID() uuid.UUID
}

// Generator implements both Candidacies and Postings.
type Generator struct {
	clock clock.Clock

	mu   sync.Mutex
	next int
}

// New returns a Generator whose candidacy counter starts at 1.
func New(c clock.Clock) *Generator {
	return &Generator{clock: c, next: 1}
}

// NextCandidacyID returns APP-<date>-<counter>. The counter increases
// monotonically for the life of the generator and never resets per day, so
// ids never collide within a run. Counters beyond 9999 widen naturally.
func (g *Generator) NextCandidacyID() string {
	g.mu.Lock()
	n := g.next
	g.next++
	g.mu.Unlock()
	return fmt.Sprintf("APP-%s-%04d", g.clock.Now().Format("20060102"), n)
}

// NextPostingID returns a new random UUID.
func (g *Generator) NextPostingID() uuid.UUID {
	return uuid.New()
}
