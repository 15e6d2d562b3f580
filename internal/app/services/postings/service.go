// internal/app/services/postings/service.go
package postings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/placementhub/internal/app/policy/eligibility"
	"github.com/dalemusser/placementhub/internal/app/services/candidacies"
	candidacystore "github.com/dalemusser/placementhub/internal/app/store/candidacies"
	postingstore "github.com/dalemusser/placementhub/internal/app/store/postings"
	"github.com/dalemusser/placementhub/internal/app/system/apperr"
	"github.com/dalemusser/placementhub/internal/app/system/clock"
	"github.com/dalemusser/placementhub/internal/app/system/idgen"
	"github.com/dalemusser/placementhub/internal/app/system/inputval"
	"github.com/dalemusser/placementhub/internal/app/system/keylock"
	"github.com/dalemusser/placementhub/internal/domain/models"
	"github.com/google/uuid"
)

// DefaultQuota is how many postings one organization account may own.
const DefaultQuota = 5

// Service owns posting CRUD, visibility and staff review. Fill and the
// APPROVED/FILLED status pair are always delegated to the orchestrator.
type Service struct {
	postings    *postingstore.Store
	candidacies *candidacystore.Store
	orch        *candidacies.Orchestrator
	ids         idgen.Postings
	clock       clock.Clock
	locks       *keylock.Locker
	quota       int
}

// New wires the service. locks must be the Locker the orchestrator uses.
func New(postings *postingstore.Store, cands *candidacystore.Store, orch *candidacies.Orchestrator, ids idgen.Postings, clk clock.Clock, locks *keylock.Locker, quota int) *Service {
	if quota <= 0 {
		quota = DefaultQuota
	}
	return &Service{
		postings:    postings,
		candidacies: cands,
		orch:        orch,
		ids:         ids,
		clock:       clk,
		locks:       locks,
		quota:       quota,
	}
}

// Quota returns the per-organization posting limit.
func (s *Service) Quota() int { return s.quota }

// Draft carries the fields of a new posting.
type Draft struct {
	Title       string       `validate:"required,max=200" label:"Title"`
	Description string       `validate:"required,max=2000" label:"Description"`
	Level       models.Level `validate:"level" label:"Level"`
	Major       string       `validate:"required,max=100" label:"Preferred major"`
	OpenDate    time.Time    `validate:"required" label:"Open date"`
	CloseDate   time.Time    `validate:"required" label:"Close date"`
	Capacity    int          `validate:"gt=0" label:"Capacity"`
}

func (d *Draft) clean() {
	d.Title = inputval.CleanText(d.Title)
	d.Description = inputval.CleanText(d.Description)
	d.Major = inputval.CleanText(d.Major)
	d.OpenDate = clock.Day(d.OpenDate)
	d.CloseDate = clock.Day(d.CloseDate)
}

func (d Draft) validate() error {
	if res := inputval.Validate(d); res.HasErrors() {
		return apperr.Validation("%s", res.All())
	}
	if !d.OpenDate.Before(d.CloseDate) {
		return apperr.Validation("Close date must be after open date.")
	}
	return nil
}

// Create stores a PENDING, invisible posting for an authorized organization
// that is still under its quota.
func (s *Service) Create(ctx context.Context, actor models.User, d Draft) (models.Posting, error) {
	if !actor.IsOrganization() {
		return models.Posting{}, apperr.Unauthorized("only company representatives can create internships")
	}
	if !actor.Authorized {
		return models.Posting{}, apperr.Unauthorized("your account has not been approved by the career centre")
	}
	d.clean()
	if err := d.validate(); err != nil {
		return models.Posting{}, err
	}

	unlock := s.locks.Lock(ownerKey(actor))
	defer unlock()

	owned, err := s.postings.CountByOwner(ctx, actor.ID)
	if err != nil {
		return models.Posting{}, fmt.Errorf("count postings: %w", err)
	}
	if int(owned) >= s.quota {
		return models.Posting{}, apperr.Validation("maximum of %d internships reached", s.quota)
	}

	p, err := s.postings.Create(ctx, models.Posting{
		ID:             s.ids.NextPostingID(),
		Title:          d.Title,
		Description:    d.Description,
		Level:          d.Level,
		PreferredMajor: d.Major,
		Company:        actor.Company,
		CreatedBy:      actor.ID,
		OpenDate:       d.OpenDate,
		CloseDate:      d.CloseDate,
		Capacity:       d.Capacity,
		Status:         models.PostingPending,
		Visible:        false,
	})
	if err != nil {
		return models.Posting{}, fmt.Errorf("create posting: %w", err)
	}
	return p, nil
}

// Patch lists the fields to change; nil fields are left alone.
type Patch struct {
	Title       *string
	Description *string
	Level       *models.Level
	Major       *string
	OpenDate    *time.Time
	CloseDate   *time.Time
	Visible     *bool
}

func (p Patch) onlyVisibility() bool {
	return p.Title == nil && p.Description == nil && p.Level == nil &&
		p.Major == nil && p.OpenDate == nil && p.CloseDate == nil
}

// Edit applies patch to the actor's posting. Fields other than visibility
// change only while the posting is PENDING.
func (s *Service) Edit(ctx context.Context, actor models.User, id uuid.UUID, patch Patch) (models.Posting, error) {
	unlock := s.locks.Lock(candidacies.PostingKey(id))
	defer unlock()

	p, err := s.owned(ctx, actor, id)
	if err != nil {
		return models.Posting{}, err
	}
	if patch.onlyVisibility() {
		if patch.Visible == nil || *patch.Visible == p.Visible {
			return p, nil
		}
		p.Visible = *patch.Visible
		return s.update(ctx, p)
	}
	if !p.Editable() {
		return models.Posting{}, apperr.InvalidState("only pending internships can be edited (%q is %s)", p.Title, p.Status)
	}

	d := Draft{
		Title:       p.Title,
		Description: p.Description,
		Level:       p.Level,
		Major:       p.PreferredMajor,
		OpenDate:    p.OpenDate,
		CloseDate:   p.CloseDate,
		Capacity:    p.Capacity,
	}
	if patch.Title != nil {
		d.Title = *patch.Title
	}
	if patch.Description != nil {
		d.Description = *patch.Description
	}
	if patch.Level != nil {
		d.Level = *patch.Level
	}
	if patch.Major != nil {
		d.Major = *patch.Major
	}
	if patch.OpenDate != nil {
		d.OpenDate = *patch.OpenDate
	}
	if patch.CloseDate != nil {
		d.CloseDate = *patch.CloseDate
	}
	d.clean()
	if err := d.validate(); err != nil {
		return models.Posting{}, err
	}

	p.Title = d.Title
	p.Description = d.Description
	p.Level = d.Level
	p.PreferredMajor = d.Major
	p.OpenDate = d.OpenDate
	p.CloseDate = d.CloseDate
	if patch.Visible != nil {
		p.Visible = *patch.Visible
	}
	return s.update(ctx, p)
}

// SetVisibility toggles the actor's posting on or off in any status.
func (s *Service) SetVisibility(ctx context.Context, actor models.User, id uuid.UUID, visible bool) (models.Posting, error) {
	return s.Edit(ctx, actor, id, Patch{Visible: &visible})
}

// Delete removes a PENDING or REJECTED posting that no candidacy references.
func (s *Service) Delete(ctx context.Context, actor models.User, id uuid.UUID) error {
	unlock := s.locks.Lock(ownerKey(actor), candidacies.PostingKey(id))
	defer unlock()

	p, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	if !p.Deletable() {
		return apperr.InvalidState("only pending or rejected internships can be deleted (%q is %s)", p.Title, p.Status)
	}
	n, err := s.candidacies.CountByPosting(ctx, id)
	if err != nil {
		return fmt.Errorf("count candidacies: %w", err)
	}
	if n > 0 {
		return apperr.InvalidState("%q still has %d application(s)", p.Title, n)
	}
	if _, err := s.postings.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete posting %s: %w", id, err)
	}
	return nil
}

// Approve publishes a PENDING posting: status APPROVED and visible.
func (s *Service) Approve(ctx context.Context, actor models.User, id uuid.UUID) (models.Posting, error) {
	return s.review(ctx, actor, id, models.PostingApproved, true)
}

// Reject closes a PENDING posting: status REJECTED and hidden.
func (s *Service) Reject(ctx context.Context, actor models.User, id uuid.UUID) (models.Posting, error) {
	return s.review(ctx, actor, id, models.PostingRejected, false)
}

func (s *Service) review(ctx context.Context, actor models.User, id uuid.UUID, to models.PostingStatus, visible bool) (models.Posting, error) {
	if !actor.IsStaff() {
		return models.Posting{}, apperr.Unauthorized("only career centre staff can review internships")
	}
	unlock := s.locks.Lock(candidacies.PostingKey(id))
	defer unlock()

	p, err := s.get(ctx, id)
	if err != nil {
		return models.Posting{}, err
	}
	if p.Status != models.PostingPending {
		return models.Posting{}, apperr.InvalidState("only pending internships can be reviewed (%q is %s)", p.Title, p.Status)
	}
	p.Status = to
	p.Visible = visible
	if _, err := s.update(ctx, p); err != nil {
		return models.Posting{}, err
	}
	return s.orch.RecomputeFillLocked(ctx, id)
}

// Get returns a posting the actor may see: staff see all, organizations their
// own, applicants whatever their default filter admits.
func (s *Service) Get(ctx context.Context, actor models.User, id uuid.UUID) (models.Posting, error) {
	p, err := s.get(ctx, id)
	if err != nil {
		return models.Posting{}, err
	}
	if actor.IsOrganization() && p.CreatedBy == actor.ID {
		return p, nil
	}
	f := eligibility.For(actor, s.orch.Options().JuniorYearMax)
	if !f.Matches(p, clock.Today(s.clock)) {
		return models.Posting{}, apperr.NotFound("internship %s not found", id)
	}
	return p, nil
}

// ListFor returns the postings that pass f, which should have been built for
// actor with NewFilter. A nil f uses the actor's defaults.
func (s *Service) ListFor(ctx context.Context, actor models.User, f *eligibility.Filter) ([]models.Posting, error) {
	if f == nil {
		f = s.NewFilter(actor)
	}
	all, err := s.postings.Find(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}
	return f.Apply(all, clock.Today(s.clock)), nil
}

// ListOwned returns every posting the organization account created.
func (s *Service) ListOwned(ctx context.Context, actor models.User) ([]models.Posting, error) {
	if !actor.IsOrganization() {
		return nil, apperr.Unauthorized("only company representatives own internships")
	}
	out, err := s.postings.Find(ctx, func(p models.Posting) bool { return p.CreatedBy == actor.ID })
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}
	return out, nil
}

// ListAll returns every posting. Staff only.
func (s *Service) ListAll(ctx context.Context, actor models.User) ([]models.Posting, error) {
	if !actor.IsStaff() {
		return nil, apperr.Unauthorized("only career centre staff can list every internship")
	}
	out, err := s.postings.Find(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}
	return out, nil
}

// ListPending returns postings awaiting staff review.
func (s *Service) ListPending(ctx context.Context, actor models.User) ([]models.Posting, error) {
	all, err := s.ListAll(ctx, actor)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, p := range all {
		if p.Status == models.PostingPending {
			out = append(out, p)
		}
	}
	return out, nil
}

// Titles returns "title (company)" for each id that still exists. It serves
// listings of candidacies, whose postings an applicant may no longer be
// allowed to open.
func (s *Service) Titles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	for _, id := range ids {
		if _, seen := out[id]; seen {
			continue
		}
		p, err := s.postings.GetByID(ctx, id)
		if errors.Is(err, postingstore.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load posting %s: %w", id, err)
		}
		out[id] = p.Title + " (" + p.Company + ")"
	}
	return out, nil
}

// NewFilter returns a filter holding the actor's role defaults.
func (s *Service) NewFilter(actor models.User) *eligibility.Filter {
	return eligibility.For(actor, s.orch.Options().JuniorYearMax)
}

func (s *Service) get(ctx context.Context, id uuid.UUID) (models.Posting, error) {
	p, err := s.postings.GetByID(ctx, id)
	if errors.Is(err, postingstore.ErrNotFound) {
		return models.Posting{}, apperr.NotFound("internship %s not found", id)
	}
	if err != nil {
		return models.Posting{}, fmt.Errorf("load posting %s: %w", id, err)
	}
	return p, nil
}

func (s *Service) owned(ctx context.Context, actor models.User, id uuid.UUID) (models.Posting, error) {
	if !actor.IsOrganization() {
		return models.Posting{}, apperr.Unauthorized("only company representatives can change internships")
	}
	p, err := s.get(ctx, id)
	if err != nil {
		return models.Posting{}, err
	}
	if p.CreatedBy != actor.ID {
		return models.Posting{}, apperr.Unauthorized("%q belongs to another company representative", p.Title)
	}
	return p, nil
}

func (s *Service) update(ctx context.Context, p models.Posting) (models.Posting, error) {
	out, err := s.postings.Update(ctx, p)
	if err != nil {
		return models.Posting{}, fmt.Errorf("update posting %s: %w", p.ID, err)
	}
	return out, nil
}

// ownerKey serializes quota checks per organization account.
func ownerKey(actor models.User) string { return "owner:" + actor.ID.Hex() }
