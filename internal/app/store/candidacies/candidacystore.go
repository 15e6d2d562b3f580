// internal/app/store/candidacies/candidacystore.go
package candidacystore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/dalemusser/placementhub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("candidacy not found")
	ErrDuplicate = errors.New("a candidacy with this id already exists")
	ErrMissingID = errors.New("candidacy id is required")
)

type record struct {
	seq int64
	c   models.Candidacy
}

// Store is the authoritative set of candidacies. Posting fill counts are
// derived from it (CountFilling), never kept on the side.
type Store struct {
	mu   sync.RWMutex
	recs map[string]record
	seq  int64
}

func New() *Store {
	return &Store{recs: make(map[string]record)}
}

func (s *Store) Create(ctx context.Context, c models.Candidacy) (models.Candidacy, error) {
	if err := ctx.Err(); err != nil {
		return models.Candidacy{}, err
	}
	if c.ID == "" {
		return models.Candidacy{}, ErrMissingID
	}
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.recs[c.ID]; exists {
		return models.Candidacy{}, ErrDuplicate
	}
	s.seq++
	s.recs[c.ID] = record{seq: s.seq, c: c}
	return c, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Candidacy, error) {
	if err := ctx.Err(); err != nil {
		return models.Candidacy{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recs[id]
	if !ok {
		return models.Candidacy{}, ErrNotFound
	}
	return r.c, nil
}

// Update replaces the stored candidacy. ApplicantID, PostingID and CreatedAt
// are kept from the stored copy.
func (s *Store) Update(ctx context.Context, c models.Candidacy) (models.Candidacy, error) {
	if err := ctx.Err(); err != nil {
		return models.Candidacy{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recs[c.ID]
	if !ok {
		return models.Candidacy{}, ErrNotFound
	}
	c.ApplicantID = r.c.ApplicantID
	c.PostingID = r.c.PostingID
	c.CreatedAt = r.c.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	r.c = c
	s.recs[c.ID] = r
	return c, nil
}

// UpdateMany replaces several candidacies in one step: either all ids exist
// and all are written, or nothing changes.
func (s *Store) UpdateMany(ctx context.Context, cs []models.Candidacy) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range cs {
		if _, ok := s.recs[c.ID]; !ok {
			return ErrNotFound
		}
	}
	now := time.Now().UTC()
	for _, c := range cs {
		r := s.recs[c.ID]
		c.ApplicantID = r.c.ApplicantID
		c.PostingID = r.c.PostingID
		c.CreatedAt = r.c.CreatedAt
		c.UpdatedAt = now
		r.c = c
		s.recs[c.ID] = r
	}
	return nil
}

// Delete removes a candidacy. Returns the number of records deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recs[id]; !ok {
		return 0, nil
	}
	delete(s.recs, id)
	return 1, nil
}

// Find returns candidacies matching match (all when nil) in submission order.
func (s *Store) Find(ctx context.Context, match func(models.Candidacy) bool) ([]models.Candidacy, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	rs := make([]record, 0)
	for _, r := range s.recs {
		if match == nil || match(r.c) {
			rs = append(rs, r)
		}
	}
	s.mu.RUnlock()

	sort.Slice(rs, func(i, j int) bool { return rs[i].seq < rs[j].seq })
	out := make([]models.Candidacy, len(rs))
	for i, r := range rs {
		out[i] = r.c
	}
	return out, nil
}

// Count returns the number of candidacies matching match.
func (s *Store) Count(ctx context.Context, match func(models.Candidacy) bool) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, r := range s.recs {
		if match == nil || match(r.c) {
			n++
		}
	}
	return n, nil
}

// ListByApplicant returns every candidacy the applicant submitted.
func (s *Store) ListByApplicant(ctx context.Context, applicantID primitive.ObjectID) ([]models.Candidacy, error) {
	return s.Find(ctx, func(c models.Candidacy) bool { return c.ApplicantID == applicantID })
}

// ListByPosting returns every candidacy referencing the posting.
func (s *Store) ListByPosting(ctx context.Context, postingID uuid.UUID) ([]models.Candidacy, error) {
	return s.Find(ctx, func(c models.Candidacy) bool { return c.PostingID == postingID })
}

// ListPendingWithdrawals returns candidacies with an undecided withdrawal request.
func (s *Store) ListPendingWithdrawals(ctx context.Context) ([]models.Candidacy, error) {
	return s.Find(ctx, func(c models.Candidacy) bool { return c.WithdrawalRequested && !c.Withdrawn })
}

// CountFilling counts SUCCESSFUL, non-withdrawn candidacies for a posting.
// This is the only source of a posting's fill count.
func (s *Store) CountFilling(ctx context.Context, postingID uuid.UUID) (int64, error) {
	return s.Count(ctx, func(c models.Candidacy) bool {
		return c.PostingID == postingID && c.CountsTowardFill()
	})
}

// CountByPosting counts every candidacy referencing a posting, in any state.
func (s *Store) CountByPosting(ctx context.Context, postingID uuid.UUID) (int64, error) {
	return s.Count(ctx, func(c models.Candidacy) bool { return c.PostingID == postingID })
}

// CountActiveByApplicant counts the applicant's active candidacies.
func (s *Store) CountActiveByApplicant(ctx context.Context, applicantID primitive.ObjectID) (int64, error) {
	return s.Count(ctx, func(c models.Candidacy) bool {
		return c.ApplicantID == applicantID && c.IsActive()
	})
}

// HasSuccessful reports whether the applicant holds a SUCCESSFUL, non-withdrawn
// candidacy other than exceptID (pass "" to consider all).
func (s *Store) HasSuccessful(ctx context.Context, applicantID primitive.ObjectID, exceptID string) (bool, error) {
	n, err := s.Count(ctx, func(c models.Candidacy) bool {
		return c.ApplicantID == applicantID && c.ID != exceptID && c.CountsTowardFill()
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
