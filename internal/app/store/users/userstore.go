// internal/app/store/users/userstore.go
package userstore

// Terminology: User Identifiers
//   - UserID / userID: the ObjectID that uniquely identifies a user record
//   - LoginID / loginID: the human-readable string users type to log in

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/placementhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrDuplicateUser = errors.New("a user with this login id already exists")
)

type record struct {
	seq int64
	u   models.User
}

// Store holds user accounts in memory with a unique index on the folded login id.
type Store struct {
	mu      sync.RWMutex
	recs    map[primitive.ObjectID]record
	byLogin map[string]primitive.ObjectID
	seq     int64
}

func New() *Store {
	return &Store{
		recs:    make(map[primitive.ObjectID]record),
		byLogin: make(map[string]primitive.ObjectID),
	}
}

// Create inserts u with a fresh ObjectID. Login ids are unique
// case- and diacritic-insensitively.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.LoginID = strings.TrimSpace(u.LoginID)
	u.LoginIDCI = text.Fold(u.LoginID)
	u.CreatedAt = now
	u.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.byLogin[u.LoginIDCI]; dup {
		return models.User{}, ErrDuplicateUser
	}
	s.seq++
	s.recs[u.ID] = record{seq: s.seq, u: u}
	s.byLogin[u.LoginIDCI] = u.ID
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recs[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return r.u, nil
}

// GetByLoginID looks a user up by login id, ignoring case and diacritics.
func (s *Store) GetByLoginID(ctx context.Context, loginID string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byLogin[text.Fold(strings.TrimSpace(loginID))]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return s.recs[id].u, nil
}

// Update replaces a user's mutable fields. The login id and role are fixed.
func (s *Store) Update(ctx context.Context, u models.User) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recs[u.ID]
	if !ok {
		return models.User{}, ErrNotFound
	}
	u.LoginID = r.u.LoginID
	u.LoginIDCI = r.u.LoginIDCI
	u.Role = r.u.Role
	u.CreatedAt = r.u.CreatedAt
	u.UpdatedAt = time.Now().UTC()
	r.u = u
	s.recs[u.ID] = r
	return u, nil
}

// Delete removes a user. Returns the number of records deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recs[id]
	if !ok {
		return 0, nil
	}
	delete(s.byLogin, r.u.LoginIDCI)
	delete(s.recs, id)
	return 1, nil
}

// Find returns users matching match (all when nil) in creation order.
func (s *Store) Find(ctx context.Context, match func(models.User) bool) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	rs := make([]record, 0, len(s.recs))
	for _, r := range s.recs {
		if match == nil || match(r.u) {
			rs = append(rs, r)
		}
	}
	s.mu.RUnlock()

	sort.Slice(rs, func(i, j int) bool { return rs[i].seq < rs[j].seq })
	out := make([]models.User, len(rs))
	for i, r := range rs {
		out[i] = r.u
	}
	return out, nil
}
