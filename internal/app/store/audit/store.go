// internal/app/store/audit/store.go
package audit

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event categories
const (
	CategoryAuth      = "auth"
	CategoryLifecycle = "lifecycle"
)

// Auth event types
const (
	EventLoginSuccess           = "login_success"
	EventLoginFailed            = "login_failed"
	EventPasswordChanged        = "password_changed"
	EventOrganizationRegistered = "organization_registered"
	EventOrganizationAuthorized = "organization_authorized"
	EventOrganizationRejected   = "organization_rejected"
	EventAccountsSeeded         = "accounts_seeded"
)

// Lifecycle event types
const (
	EventPostingCreated      = "posting_created"
	EventPostingUpdated      = "posting_updated"
	EventPostingVisibility   = "posting_visibility_changed"
	EventPostingDeleted      = "posting_deleted"
	EventPostingApproved     = "posting_approved"
	EventPostingRejected     = "posting_rejected"
	EventCandidacySubmitted  = "candidacy_submitted"
	EventCandidacyApproved   = "candidacy_approved"
	EventCandidacyRejected   = "candidacy_rejected"
	EventCandidacyDeleted    = "candidacy_deleted"
	EventOfferAccepted       = "offer_accepted"
	EventWithdrawalRequested = "withdrawal_requested"
	EventWithdrawalApproved  = "withdrawal_approved"
	EventWithdrawalRejected  = "withdrawal_rejected"
)

// Event represents an audit event.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Timestamp time.Time          `bson:"timestamp"`

	// Event classification
	Category  string `bson:"category"`
	EventType string `bson:"event_type"`

	// Who
	ActorID *primitive.ObjectID `bson:"actor_id,omitempty"` // who performed the action
	UserID  *primitive.ObjectID `bson:"user_id,omitempty"`  // affected account

	// What
	PostingID   string `bson:"posting_id,omitempty"`
	CandidacyID string `bson:"candidacy_id,omitempty"`

	// Outcome
	Success       bool   `bson:"success"`
	FailureReason string `bson:"failure_reason,omitempty"`

	// Additional details (varies by event type)
	Details map[string]string `bson:"details,omitempty"`
}

// QueryFilter defines filters for querying audit events.
type QueryFilter struct {
	ActorID   *primitive.ObjectID
	Category  string
	EventType string
	PostingID string
	Success   *bool
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Offset    int
}

func (f QueryFilter) matches(e Event) bool {
	if f.ActorID != nil && (e.ActorID == nil || *e.ActorID != *f.ActorID) {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.EventType != "" && e.EventType != f.EventType {
		return false
	}
	if f.PostingID != "" && e.PostingID != f.PostingID {
		return false
	}
	if f.Success != nil && e.Success != *f.Success {
		return false
	}
	if f.StartTime != nil && e.Timestamp.Before(*f.StartTime) {
		return false
	}
	if f.EndTime != nil && e.Timestamp.After(*f.EndTime) {
		return false
	}
	return true
}

// DefaultCapacity is how many events a Store keeps when none is given.
const DefaultCapacity = 1000

// Store keeps the most recent audit events in memory. Once full, the oldest
// event is dropped for each new one.
type Store struct {
	mu     sync.RWMutex
	events []Event // oldest first
	max    int
}

// New creates a Store retaining at most capacity events.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{max: capacity}
}

// Log records an audit event.
func (s *Store) Log(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == s.max {
		copy(s.events, s.events[1:])
		s.events = s.events[:len(s.events)-1]
	}
	s.events = append(s.events, event)
	return nil
}

// Query retrieves audit events matching the given filter, most recent first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	skipped := 0
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		e := s.events[i]
		if !filter.matches(e) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// CountByFilter returns the count of events matching the filter.
func (s *Store) CountByFilter(ctx context.Context, filter QueryFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, e := range s.events {
		if filter.matches(e) {
			n++
		}
	}
	return n, nil
}

// GetByActor retrieves recent audit events performed by one account.
func (s *Store) GetByActor(ctx context.Context, actorID primitive.ObjectID, limit int) ([]Event, error) {
	return s.Query(ctx, QueryFilter{ActorID: &actorID, Limit: limit})
}

// GetRecent retrieves the most recent audit events.
func (s *Store) GetRecent(ctx context.Context, limit int) ([]Event, error) {
	return s.Query(ctx, QueryFilter{Limit: limit})
}

// GetFailedLogins retrieves recent failed login attempts.
func (s *Store) GetFailedLogins(ctx context.Context, since time.Time, limit int) ([]Event, error) {
	failed := false
	return s.Query(ctx, QueryFilter{
		Category:  CategoryAuth,
		EventType: EventLoginFailed,
		Success:   &failed,
		StartTime: &since,
		Limit:     limit,
	})
}
