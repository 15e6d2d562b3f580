// internal/app/services/candidacies/transitions.go
package candidacies

import (
	"context"
	"fmt"
	"sort"

	"github.com/dalemusser/placementhub/internal/app/policy/eligibility"
	"github.com/dalemusser/placementhub/internal/app/system/apperr"
	"github.com/dalemusser/placementhub/internal/app/system/clock"
	"github.com/dalemusser/placementhub/internal/domain/models"
	"github.com/google/uuid"
)

// Submit creates a PENDING candidacy for actor on the posting.
//
// Guards run in order and the first failure wins; every guard failure is an
// apperr.ErrValidation:
//  1. fewer than MaxActive active candidacies
//  2. no SUCCESSFUL candidacy held
//  3. year of study eligible for the posting's level
//  4. posting approved (APPROVED or FILLED)
//  5. posting not FILLED
//  6. closing date not passed
//  7. no active candidacy already on this posting
func (o *Orchestrator) Submit(ctx context.Context, actor models.User, postingID uuid.UUID) (models.Candidacy, error) {
	if !actor.IsApplicant() {
		return models.Candidacy{}, apperr.Unauthorized("only applicants can apply for internships")
	}
	unlock := o.locks.Lock(ApplicantKey(actor.ID), PostingKey(postingID))
	defer unlock()

	p, err := o.getPosting(ctx, postingID)
	if err != nil {
		return models.Candidacy{}, err
	}
	if err := o.checkSubmission(ctx, actor, p); err != nil {
		return models.Candidacy{}, err
	}

	c := models.Candidacy{
		ID:          o.ids.NextCandidacyID(),
		ApplicantID: actor.ID,
		PostingID:   p.ID,
		Status:      models.CandidacyPending,
		CreatedAt:   o.clock.Now().UTC(),
	}
	created, err := o.candidacies.Create(commit(ctx), c)
	if err != nil {
		return models.Candidacy{}, fmt.Errorf("create candidacy: %w", err)
	}
	return created, nil
}

func (o *Orchestrator) checkSubmission(ctx context.Context, actor models.User, p models.Posting) error {
	active, err := o.candidacies.CountActiveByApplicant(ctx, actor.ID)
	if err != nil {
		return fmt.Errorf("count active candidacies: %w", err)
	}
	if int(active) >= o.opts.MaxActive {
		return apperr.Validation("you already have the maximum of %d active applications", o.opts.MaxActive)
	}

	has, err := o.candidacies.HasSuccessful(ctx, actor.ID, "")
	if err != nil {
		return fmt.Errorf("check successful candidacies: %w", err)
	}
	if has {
		return apperr.Validation("you already hold a successful application")
	}

	if !eligibility.YearEligible(p.Level, actor.Year, o.opts.JuniorYearMax) {
		return apperr.Validation("year %d applicants are only eligible for %s internships", actor.Year, models.LevelBasic)
	}

	if p.Status != models.PostingApproved && p.Status != models.PostingFilled {
		return apperr.Validation("internship %q is not open for applications", p.Title)
	}
	if p.Status == models.PostingFilled {
		return apperr.Validation("internship %q has been filled", p.Title)
	}
	if p.ClosedOn(clock.Today(o.clock)) {
		return apperr.Validation("the closing date for %q has passed", p.Title)
	}

	dup, err := o.candidacies.Count(ctx, func(c models.Candidacy) bool {
		return c.ApplicantID == actor.ID && c.PostingID == p.ID && c.IsActive()
	})
	if err != nil {
		return fmt.Errorf("check duplicate candidacy: %w", err)
	}
	if dup > 0 {
		return apperr.Validation("you have already applied for %q", p.Title)
	}
	return nil
}

// Approve marks a PENDING candidacy SUCCESSFUL on behalf of the organization
// that owns the posting, then recomputes the posting's fill.
func (o *Orchestrator) Approve(ctx context.Context, actor models.User, id string) (models.Candidacy, error) {
	c, unlock, err := o.lockCandidacy(ctx, id)
	if err != nil {
		return models.Candidacy{}, err
	}
	defer unlock()

	p, err := o.getPosting(ctx, c.PostingID)
	if err != nil {
		return models.Candidacy{}, err
	}
	if err := ownsPosting(actor, p); err != nil {
		return models.Candidacy{}, err
	}
	if c.Status != models.CandidacyPending || c.Withdrawn {
		return models.Candidacy{}, apperr.InvalidState("only pending applications can be approved (%s is %s)", c.ID, c.Status)
	}
	has, err := o.candidacies.HasSuccessful(ctx, c.ApplicantID, c.ID)
	if err != nil {
		return models.Candidacy{}, fmt.Errorf("check successful candidacies: %w", err)
	}
	if has {
		return models.Candidacy{}, apperr.InvalidState("the applicant already holds a successful application")
	}
	filled, err := o.candidacies.CountFilling(ctx, p.ID)
	if err != nil {
		return models.Candidacy{}, fmt.Errorf("count fill: %w", err)
	}
	if int(filled) >= p.Capacity {
		return models.Candidacy{}, apperr.InvalidState("internship %q has already been filled", p.Title)
	}

	wctx := commit(ctx)
	c.Status = models.CandidacySuccessful
	updated, err := o.candidacies.Update(wctx, c)
	if err != nil {
		return models.Candidacy{}, fmt.Errorf("update candidacy %s: %w", c.ID, err)
	}
	if _, err := o.RecomputeFillLocked(wctx, p.ID); err != nil {
		return models.Candidacy{}, err
	}
	return updated, nil
}

// Reject marks a PENDING candidacy UNSUCCESSFUL. Any outstanding withdrawal
// request is dropped since the candidacy is no longer withdrawable.
func (o *Orchestrator) Reject(ctx context.Context, actor models.User, id string) (models.Candidacy, error) {
	c, unlock, err := o.lockCandidacy(ctx, id)
	if err != nil {
		return models.Candidacy{}, err
	}
	defer unlock()

	p, err := o.getPosting(ctx, c.PostingID)
	if err != nil {
		return models.Candidacy{}, err
	}
	if err := ownsPosting(actor, p); err != nil {
		return models.Candidacy{}, err
	}
	if c.Status != models.CandidacyPending || c.Withdrawn {
		return models.Candidacy{}, apperr.InvalidState("only pending applications can be rejected (%s is %s)", c.ID, c.Status)
	}

	c.Status = models.CandidacyUnsuccessful
	c.WithdrawalRequested = false
	updated, err := o.candidacies.Update(commit(ctx), c)
	if err != nil {
		return models.Candidacy{}, fmt.Errorf("update candidacy %s: %w", c.ID, err)
	}
	return updated, nil
}

// Accept finalizes a SUCCESSFUL candidacy as the applicant's placement.
// Every other active candidacy of the applicant is withdrawn in the same
// step and the fill of every touched posting is recomputed. Accepting the
// same candidacy again returns it unchanged.
func (o *Orchestrator) Accept(ctx context.Context, actor models.User, id string) (models.Candidacy, error) {
	ref, err := o.getCandidacy(ctx, id)
	if err != nil {
		return models.Candidacy{}, err
	}
	if !actor.IsApplicant() || ref.ApplicantID != actor.ID {
		return models.Candidacy{}, apperr.Unauthorized("you can only accept your own applications")
	}

	// The applicant lock keeps the candidacy set stable while the posting
	// keys are collected; applicant keys sort before posting keys.
	unlockApplicant := o.locks.Lock(ApplicantKey(actor.ID))
	defer unlockApplicant()

	mine, err := o.candidacies.ListByApplicant(ctx, actor.ID)
	if err != nil {
		return models.Candidacy{}, fmt.Errorf("list candidacies: %w", err)
	}
	keys := make([]string, 0, len(mine))
	for _, m := range mine {
		keys = append(keys, PostingKey(m.PostingID))
	}
	unlockPostings := o.locks.Lock(keys...)
	defer unlockPostings()

	c, err := o.getCandidacy(ctx, id)
	if err != nil {
		return models.Candidacy{}, err
	}
	if c.Status != models.CandidacySuccessful || c.Withdrawn {
		return models.Candidacy{}, apperr.InvalidState("only successful applications can be accepted (%s is %s)", c.ID, c.Status)
	}

	var batch []models.Candidacy
	touched := map[uuid.UUID]struct{}{c.PostingID: {}}
	for _, m := range mine {
		if m.ID == c.ID {
			continue
		}
		if m.IsPlacement() {
			return models.Candidacy{}, apperr.InvalidState("placement %s has already been accepted", m.ID)
		}
		if !m.IsActive() {
			continue
		}
		m.Status = models.CandidacyWithdrawn
		m.Withdrawn = true
		m.WithdrawalRequested = false
		batch = append(batch, m)
		touched[m.PostingID] = struct{}{}
	}
	if !c.Accepted {
		now := o.clock.Now().UTC()
		c.Accepted = true
		c.AcceptedAt = &now
		batch = append(batch, c)
	}
	if len(batch) == 0 {
		return c, nil
	}

	wctx := commit(ctx)
	if err := o.candidacies.UpdateMany(wctx, batch); err != nil {
		return models.Candidacy{}, fmt.Errorf("accept candidacy %s: %w", c.ID, err)
	}
	for _, pid := range sortedIDs(touched) {
		if _, err := o.RecomputeFillLocked(wctx, pid); err != nil {
			return models.Candidacy{}, err
		}
	}
	return o.getCandidacy(wctx, c.ID)
}

// Delete removes a PENDING candidacy. The owning applicant or staff may delete.
func (o *Orchestrator) Delete(ctx context.Context, actor models.User, id string) error {
	c, unlock, err := o.lockCandidacy(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	if !actor.IsStaff() && !(actor.IsApplicant() && c.ApplicantID == actor.ID) {
		return apperr.Unauthorized("you can only delete your own applications")
	}
	if c.Status != models.CandidacyPending {
		return apperr.InvalidState("only pending applications can be deleted (%s is %s)", c.ID, c.Status)
	}
	if _, err := o.candidacies.Delete(commit(ctx), c.ID); err != nil {
		return fmt.Errorf("delete candidacy %s: %w", c.ID, err)
	}
	return nil
}

func ownsPosting(actor models.User, p models.Posting) error {
	if !actor.IsOrganization() || p.CreatedBy != actor.ID {
		return apperr.Unauthorized("only the organization that created %q can review its applications", p.Title)
	}
	return nil
}

func sortedIDs(set map[uuid.UUID]struct{}) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
