// internal/app/services/candidacies/queries.go
package candidacies

import (
	"context"
	"fmt"

	"github.com/dalemusser/placementhub/internal/app/system/apperr"
	"github.com/dalemusser/placementhub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Get returns a candidacy visible to actor: its applicant, the organization
// owning the posting, or staff.
func (o *Orchestrator) Get(ctx context.Context, actor models.User, id string) (models.Candidacy, error) {
	c, err := o.getCandidacy(ctx, id)
	if err != nil {
		return models.Candidacy{}, err
	}
	switch {
	case actor.IsStaff():
		return c, nil
	case actor.IsApplicant() && c.ApplicantID == actor.ID:
		return c, nil
	case actor.IsOrganization():
		p, err := o.getPosting(ctx, c.PostingID)
		if err != nil {
			return models.Candidacy{}, err
		}
		if p.CreatedBy == actor.ID {
			return c, nil
		}
	}
	return models.Candidacy{}, apperr.Unauthorized("you cannot view application %s", id)
}

// ListByApplicant returns an applicant's candidacies in submission order.
// Applicants may list only their own; staff may list anyone's.
func (o *Orchestrator) ListByApplicant(ctx context.Context, actor models.User, applicantID primitive.ObjectID) ([]models.Candidacy, error) {
	if !actor.IsStaff() && !(actor.IsApplicant() && actor.ID == applicantID) {
		return nil, apperr.Unauthorized("you can only list your own applications")
	}
	out, err := o.candidacies.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, fmt.Errorf("list candidacies: %w", err)
	}
	return out, nil
}

// ListByPosting returns the candidacies on a posting for its owner or staff.
func (o *Orchestrator) ListByPosting(ctx context.Context, actor models.User, postingID uuid.UUID) ([]models.Candidacy, error) {
	p, err := o.getPosting(ctx, postingID)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() {
		if err := ownsPosting(actor, p); err != nil {
			return nil, err
		}
	}
	out, err := o.candidacies.ListByPosting(ctx, postingID)
	if err != nil {
		return nil, fmt.Errorf("list candidacies: %w", err)
	}
	return out, nil
}

// ListPendingWithdrawals returns every candidacy awaiting a staff decision.
func (o *Orchestrator) ListPendingWithdrawals(ctx context.Context, actor models.User) ([]models.Candidacy, error) {
	if !actor.IsStaff() {
		return nil, apperr.Unauthorized("only career centre staff can review withdrawal requests")
	}
	out, err := o.candidacies.ListPendingWithdrawals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list withdrawal requests: %w", err)
	}
	return out, nil
}
