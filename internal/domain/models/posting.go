// internal/domain/models/posting.go
package models

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Level is the ordered difficulty of a posting: BASIC < INTERMEDIATE < ADVANCED.
type Level int

const (
	LevelBasic Level = iota + 1
	LevelIntermediate
	LevelAdvanced
)

// Levels lists every valid level in ascending order.
var Levels = []Level{LevelBasic, LevelIntermediate, LevelAdvanced}

func (l Level) String() string {
	switch l {
	case LevelBasic:
		return "BASIC"
	case LevelIntermediate:
		return "INTERMEDIATE"
	case LevelAdvanced:
		return "ADVANCED"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	return l >= LevelBasic && l <= LevelAdvanced
}

// PostingStatus is the approval/capacity status of a posting.
type PostingStatus string

const (
	PostingPending  PostingStatus = "PENDING"
	PostingApproved PostingStatus = "APPROVED"
	PostingRejected PostingStatus = "REJECTED"
	PostingFilled   PostingStatus = "FILLED"
)

// PostingStatuses lists every valid posting status.
var PostingStatuses = []PostingStatus{PostingPending, PostingApproved, PostingRejected, PostingFilled}

// Posting is a listed internship opportunity.
//
// Filled is derived: it is always recomputed from the candidacy store as the
// number of SUCCESSFUL, non-withdrawn candidacies referencing the posting.
// Capacity never changes after creation.
type Posting struct {
	ID               uuid.UUID          `bson:"_id" json:"id"`
	Title            string             `bson:"title" json:"title"`
	Description      string             `bson:"description" json:"description"`
	Level            Level              `bson:"level" json:"level"`
	PreferredMajor   string             `bson:"preferred_major" json:"preferred_major"`
	PreferredMajorCI string             `bson:"preferred_major_ci" json:"preferred_major_ci"` // folded for matching
	Company          string             `bson:"company" json:"company"`
	CompanyCI        string             `bson:"company_ci" json:"company_ci"` // folded for matching
	CreatedBy        primitive.ObjectID `bson:"created_by" json:"created_by"`

	OpenDate  time.Time `bson:"open_date" json:"open_date"`
	CloseDate time.Time `bson:"close_date" json:"close_date"`

	Capacity int           `bson:"capacity" json:"capacity"`
	Filled   int           `bson:"filled" json:"filled"`
	Status   PostingStatus `bson:"status" json:"status"`
	Visible  bool          `bson:"visible" json:"visible"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasCapacity reports whether another candidacy can still be approved.
func (p Posting) HasCapacity() bool {
	return p.Filled < p.Capacity
}

// Editable reports whether fields other than visibility may change.
func (p Posting) Editable() bool {
	return p.Status == PostingPending
}

// Deletable reports whether the posting's status permits deletion.
// Dependent candidacies are checked separately.
func (p Posting) Deletable() bool {
	return p.Status == PostingPending || p.Status == PostingRejected
}

// IsOpenOn reports whether day falls within [OpenDate, CloseDate].
func (p Posting) IsOpenOn(day time.Time) bool {
	return !day.Before(p.OpenDate) && !day.After(p.CloseDate)
}

// ClosedOn reports whether the application deadline has passed on day.
func (p Posting) ClosedOn(day time.Time) bool {
	return day.After(p.CloseDate)
}
