// internal/app/services/candidacies/orchestrator.go
package candidacies

import (
	"context"
	"errors"
	"fmt"

	candidacystore "github.com/dalemusser/placementhub/internal/app/store/candidacies"
	postingstore "github.com/dalemusser/placementhub/internal/app/store/postings"
	"github.com/dalemusser/placementhub/internal/app/system/apperr"
	"github.com/dalemusser/placementhub/internal/app/system/clock"
	"github.com/dalemusser/placementhub/internal/app/system/idgen"
	"github.com/dalemusser/placementhub/internal/app/system/keylock"
	"github.com/dalemusser/placementhub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Options are the applicant-level limits enforced by the orchestrator.
type Options struct {
	// MaxActive is the most PENDING or SUCCESSFUL candidacies an applicant may hold.
	MaxActive int
	// JuniorYearMax is the last year of study restricted to BASIC postings.
	JuniorYearMax int
}

// DefaultOptions returns the standard limits: 3 active candidacies, years 1-2 junior.
func DefaultOptions() Options {
	return Options{MaxActive: 3, JuniorYearMax: 2}
}

// Orchestrator runs every candidacy transition and keeps each referenced
// posting's fill count and FILLED status consistent with the candidacy set.
//
// Every operation locks the posting (and applicant) it touches, re-reads the
// records under the lock, checks its guards, and only then writes. A guard
// failure returns an apperr kind and changes nothing.
type Orchestrator struct {
	postings    *postingstore.Store
	candidacies *candidacystore.Store
	ids         idgen.Candidacies
	clock       clock.Clock
	locks       *keylock.Locker
	opts        Options
}

// New wires an orchestrator. locks should be shared with the posting service
// so posting mutations and candidacy transitions serialize on the same keys.
func New(postings *postingstore.Store, candidacies *candidacystore.Store, ids idgen.Candidacies, clk clock.Clock, locks *keylock.Locker, opts Options) *Orchestrator {
	if locks == nil {
		locks = keylock.New()
	}
	if opts.MaxActive <= 0 {
		opts.MaxActive = DefaultOptions().MaxActive
	}
	if opts.JuniorYearMax <= 0 {
		opts.JuniorYearMax = DefaultOptions().JuniorYearMax
	}
	return &Orchestrator{
		postings:    postings,
		candidacies: candidacies,
		ids:         ids,
		clock:       clk,
		locks:       locks,
		opts:        opts,
	}
}

// Options returns the limits the orchestrator enforces.
func (o *Orchestrator) Options() Options { return o.opts }

// PostingKey is the lock key for a posting.
func PostingKey(id uuid.UUID) string { return "posting:" + id.String() }

// ApplicantKey is the lock key for an applicant's candidacy set.
func ApplicantKey(id primitive.ObjectID) string { return "applicant:" + id.Hex() }

// lockCandidacy reads c's immutable references, then locks its applicant and
// posting and re-reads the candidacy under the lock.
func (o *Orchestrator) lockCandidacy(ctx context.Context, id string) (models.Candidacy, func(), error) {
	ref, err := o.getCandidacy(ctx, id)
	if err != nil {
		return models.Candidacy{}, nil, err
	}
	unlock := o.locks.Lock(ApplicantKey(ref.ApplicantID), PostingKey(ref.PostingID))
	c, err := o.getCandidacy(ctx, id)
	if err != nil {
		unlock()
		return models.Candidacy{}, nil, err
	}
	return c, unlock, nil
}

func (o *Orchestrator) getCandidacy(ctx context.Context, id string) (models.Candidacy, error) {
	c, err := o.candidacies.GetByID(ctx, id)
	if errors.Is(err, candidacystore.ErrNotFound) {
		return models.Candidacy{}, apperr.NotFound("application %s not found", id)
	}
	if err != nil {
		return models.Candidacy{}, fmt.Errorf("load candidacy %s: %w", id, err)
	}
	return c, nil
}

func (o *Orchestrator) getPosting(ctx context.Context, id uuid.UUID) (models.Posting, error) {
	p, err := o.postings.GetByID(ctx, id)
	if errors.Is(err, postingstore.ErrNotFound) {
		return models.Posting{}, apperr.NotFound("internship %s not found", id)
	}
	if err != nil {
		return models.Posting{}, fmt.Errorf("load posting %s: %w", id, err)
	}
	return p, nil
}

// RecomputeFill locks the posting and reconciles its fill count and status.
func (o *Orchestrator) RecomputeFill(ctx context.Context, postingID uuid.UUID) (models.Posting, error) {
	unlock := o.locks.Lock(PostingKey(postingID))
	defer unlock()
	return o.RecomputeFillLocked(ctx, postingID)
}

// RecomputeFillLocked is RecomputeFill for callers already holding the
// posting's lock.
//
// Filled is set to the number of SUCCESSFUL, non-withdrawn candidacies.
// An APPROVED posting at capacity becomes FILLED; a FILLED posting below
// capacity returns to APPROVED. Visibility is never touched.
func (o *Orchestrator) RecomputeFillLocked(ctx context.Context, postingID uuid.UUID) (models.Posting, error) {
	p, err := o.getPosting(ctx, postingID)
	if err != nil {
		return models.Posting{}, err
	}
	n, err := o.candidacies.CountFilling(ctx, postingID)
	if err != nil {
		return models.Posting{}, fmt.Errorf("count fill for %s: %w", postingID, err)
	}

	next := p
	next.Filled = int(n)
	switch {
	case p.Status == models.PostingApproved && next.Filled >= p.Capacity:
		next.Status = models.PostingFilled
	case p.Status == models.PostingFilled && next.Filled < p.Capacity:
		next.Status = models.PostingApproved
	}
	if next.Filled == p.Filled && next.Status == p.Status {
		return p, nil
	}
	updated, err := o.postings.Update(ctx, next)
	if err != nil {
		return models.Posting{}, fmt.Errorf("update posting %s: %w", postingID, err)
	}
	return updated, nil
}

// commit detaches ctx from cancellation once guards have passed, so a
// multi-record write is never abandoned halfway.
func commit(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
