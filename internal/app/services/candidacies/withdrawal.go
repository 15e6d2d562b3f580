// internal/app/services/candidacies/withdrawal.go
package candidacies

import (
	"context"
	"fmt"

	"github.com/dalemusser/placementhub/internal/app/system/apperr"
	"github.com/dalemusser/placementhub/internal/domain/models"
)

// RequestWithdrawal flags the applicant's candidacy for staff review.
// Requesting again while a request is outstanding is a no-op.
func (o *Orchestrator) RequestWithdrawal(ctx context.Context, actor models.User, id string) (models.Candidacy, error) {
	c, unlock, err := o.lockCandidacy(ctx, id)
	if err != nil {
		return models.Candidacy{}, err
	}
	defer unlock()

	if !actor.IsApplicant() || c.ApplicantID != actor.ID {
		return models.Candidacy{}, apperr.Unauthorized("you can only withdraw your own applications")
	}
	if !c.CanBeWithdrawn() {
		return models.Candidacy{}, apperr.InvalidState("application %s cannot be withdrawn (%s)", c.ID, c.Status)
	}
	if c.WithdrawalRequested {
		return c, nil
	}

	c.WithdrawalRequested = true
	updated, err := o.candidacies.Update(commit(ctx), c)
	if err != nil {
		return models.Candidacy{}, fmt.Errorf("update candidacy %s: %w", c.ID, err)
	}
	return updated, nil
}

// ApproveWithdrawal withdraws the candidacy for good. A SUCCESSFUL candidacy
// frees its slot here, so a FILLED posting can return to APPROVED.
func (o *Orchestrator) ApproveWithdrawal(ctx context.Context, actor models.User, id string) (models.Candidacy, error) {
	if !actor.IsStaff() {
		return models.Candidacy{}, apperr.Unauthorized("only career centre staff can decide withdrawal requests")
	}
	c, unlock, err := o.lockCandidacy(ctx, id)
	if err != nil {
		return models.Candidacy{}, err
	}
	defer unlock()

	if !c.WithdrawalRequested {
		return models.Candidacy{}, apperr.NoRequestPending("no withdrawal request found for application %s", c.ID)
	}

	wctx := commit(ctx)
	c.Status = models.CandidacyWithdrawn
	c.Withdrawn = true
	c.WithdrawalRequested = false
	updated, err := o.candidacies.Update(wctx, c)
	if err != nil {
		return models.Candidacy{}, fmt.Errorf("update candidacy %s: %w", c.ID, err)
	}
	if _, err := o.RecomputeFillLocked(wctx, c.PostingID); err != nil {
		return models.Candidacy{}, err
	}
	return updated, nil
}

// RejectWithdrawal clears the request and leaves the candidacy as it was.
func (o *Orchestrator) RejectWithdrawal(ctx context.Context, actor models.User, id string) (models.Candidacy, error) {
	if !actor.IsStaff() {
		return models.Candidacy{}, apperr.Unauthorized("only career centre staff can decide withdrawal requests")
	}
	c, unlock, err := o.lockCandidacy(ctx, id)
	if err != nil {
		return models.Candidacy{}, err
	}
	defer unlock()

	if !c.WithdrawalRequested {
		return models.Candidacy{}, apperr.NoRequestPending("no withdrawal request found for application %s", c.ID)
	}

	c.WithdrawalRequested = false
	updated, err := o.candidacies.Update(commit(ctx), c)
	if err != nil {
		return models.Candidacy{}, fmt.Errorf("update candidacy %s: %w", c.ID, err)
	}
	return updated, nil
}
