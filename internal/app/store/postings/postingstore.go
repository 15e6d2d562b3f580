// internal/app/store/postings/postingstore.go
package postingstore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/dalemusser/placementhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("posting not found")
	ErrDuplicate = errors.New("a posting with this id already exists")
)

type record struct {
	seq int64
	p   models.Posting
}

// Store is the in-memory record store for postings. It hands out copies;
// callers change a posting only through Update.
type Store struct {
	mu   sync.RWMutex
	recs map[uuid.UUID]record
	seq  int64
}

func New() *Store {
	return &Store{recs: make(map[uuid.UUID]record)}
}

// Create inserts p, assigning an id when p.ID is nil and stamping the folded
// match fields and timestamps.
func (s *Store) Create(ctx context.Context, p models.Posting) (models.Posting, error) {
	if err := ctx.Err(); err != nil {
		return models.Posting{}, err
	}
	now := time.Now().UTC()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	fold(&p)
	p.CreatedAt = now
	p.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.recs[p.ID]; exists {
		return models.Posting{}, ErrDuplicate
	}
	s.seq++
	s.recs[p.ID] = record{seq: s.seq, p: p}
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (models.Posting, error) {
	if err := ctx.Err(); err != nil {
		return models.Posting{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recs[id]
	if !ok {
		return models.Posting{}, ErrNotFound
	}
	return r.p, nil
}

// Update replaces the stored posting with p and refreshes UpdatedAt.
// ID, CreatedAt and Capacity are immutable and always kept from the stored copy.
func (s *Store) Update(ctx context.Context, p models.Posting) (models.Posting, error) {
	if err := ctx.Err(); err != nil {
		return models.Posting{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recs[p.ID]
	if !ok {
		return models.Posting{}, ErrNotFound
	}
	p.CreatedAt = r.p.CreatedAt
	p.Capacity = r.p.Capacity
	p.UpdatedAt = time.Now().UTC()
	fold(&p)
	r.p = p
	s.recs[p.ID] = r
	return p, nil
}

// Delete removes a posting. Returns the number of records deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
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

// Find returns postings matching match (all postings when match is nil),
// in creation order.
func (s *Store) Find(ctx context.Context, match func(models.Posting) bool) ([]models.Posting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	rs := make([]record, 0, len(s.recs))
	for _, r := range s.recs {
		if match == nil || match(r.p) {
			rs = append(rs, r)
		}
	}
	s.mu.RUnlock()

	sort.Slice(rs, func(i, j int) bool { return rs[i].seq < rs[j].seq })
	out := make([]models.Posting, len(rs))
	for i, r := range rs {
		out[i] = r.p
	}
	return out, nil
}

// Count returns the number of postings matching match.
func (s *Store) Count(ctx context.Context, match func(models.Posting) bool) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, r := range s.recs {
		if match == nil || match(r.p) {
			n++
		}
	}
	return n, nil
}

// CountByOwner returns how many postings the organization account owns.
func (s *Store) CountByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	return s.Count(ctx, func(p models.Posting) bool { return p.CreatedBy == owner })
}

func fold(p *models.Posting) {
	p.PreferredMajorCI = text.Fold(p.PreferredMajor)
	p.CompanyCI = text.Fold(p.Company)
}
