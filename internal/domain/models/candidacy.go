// internal/domain/models/candidacy.go
package models

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CandidacyStatus is the review status of a single application.
type CandidacyStatus string

const (
	CandidacyPending      CandidacyStatus = "PENDING"
	CandidacySuccessful   CandidacyStatus = "SUCCESSFUL"
	CandidacyUnsuccessful CandidacyStatus = "UNSUCCESSFUL"
	CandidacyWithdrawn    CandidacyStatus = "WITHDRAWN"
)

// Candidacy is one applicant's bid for one posting.
//
// NOTE:
//   - Withdrawn implies Status == CandidacyWithdrawn and is never reset.
//   - Accepted is only meaningful while Status == CandidacySuccessful.
type Candidacy struct {
	ID          string             `bson:"_id" json:"id"` // APP-YYYYMMDD-####
	ApplicantID primitive.ObjectID `bson:"applicant_id" json:"applicant_id"`
	PostingID   uuid.UUID          `bson:"posting_id" json:"posting_id"`
	Status      CandidacyStatus    `bson:"status" json:"status"`

	WithdrawalRequested bool `bson:"withdrawal_requested" json:"withdrawal_requested"`
	Withdrawn           bool `bson:"withdrawn" json:"withdrawn"`

	Accepted   bool       `bson:"accepted" json:"accepted"`
	AcceptedAt *time.Time `bson:"accepted_at,omitempty" json:"accepted_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsActive reports whether the candidacy counts toward the applicant's quota:
// PENDING or SUCCESSFUL and not withdrawn.
func (c Candidacy) IsActive() bool {
	if c.Withdrawn {
		return false
	}
	return c.Status == CandidacyPending || c.Status == CandidacySuccessful
}

// CanBeWithdrawn reports whether a withdrawal may be requested.
// SUCCESSFUL candidacies are withdrawable too; staff approval finalizes them.
func (c Candidacy) CanBeWithdrawn() bool {
	if c.Withdrawn || c.Status == CandidacyUnsuccessful {
		return false
	}
	return c.Status == CandidacyPending || c.Status == CandidacySuccessful
}

// CountsTowardFill reports whether the candidacy occupies a slot on its posting.
func (c Candidacy) CountsTowardFill() bool {
	return c.Status == CandidacySuccessful && !c.Withdrawn
}

// IsPlacement reports whether the candidacy is a SUCCESSFUL offer the
// applicant has accepted.
func (c Candidacy) IsPlacement() bool {
	return c.CountsTowardFill() && c.Accepted
}
