package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/placementhub/internal/app/system/clock"
	candidacystore "github.com/dalemusser/placementhub/internal/app/store/candidacies"
	postingstore "github.com/dalemusser/placementhub/internal/app/store/postings"
	userstore "github.com/dalemusser/placementhub/internal/app/store/users"
	"github.com/dalemusser/placementhub/internal/domain/models"
	"github.com/google/uuid"
)

// Today is the calendar day every fixture clock starts on.
var Today = clock.Date(2026, time.October, 19)

// NewClock returns a fixed clock at 09:00 UTC on Today.
func NewClock() *clock.Fixed {
	return clock.NewFixed(Today.Add(9 * time.Hour))
}

// TestContext returns a context with a short timeout for store and service calls.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// Fixtures provides helper methods for creating test data directly in the stores,
// bypassing service guards.
type Fixtures struct {
	t *testing.T

	Users       *userstore.Store
	Postings    *postingstore.Store
	Candidacies *candidacystore.Store
	Clock       *clock.Fixed
}

// NewFixtures creates empty stores and a fixed clock.
func NewFixtures(t *testing.T) *Fixtures {
	t.Helper()
	return &Fixtures{
		t:           t,
		Users:       userstore.New(),
		Postings:    postingstore.New(),
		Candidacies: candidacystore.New(),
		Clock:       NewClock(),
	}
}

// CreateApplicant creates an applicant account.
func (f *Fixtures) CreateApplicant(ctx context.Context, loginID, major string, year int) models.User {
	f.t.Helper()
	u, err := f.Users.Create(ctx, models.User{
		LoginID: loginID,
		Name:    "Applicant " + loginID,
		Role:    models.RoleApplicant,
		Major:   major,
		Year:    year,
	})
	if err != nil {
		f.t.Fatalf("failed to create test applicant: %v", err)
	}
	return u
}

// CreateOrganization creates an authorized organization account for company.
func (f *Fixtures) CreateOrganization(ctx context.Context, loginID, company string) models.User {
	f.t.Helper()
	u, err := f.Users.Create(ctx, models.User{
		LoginID:    loginID,
		Name:       "Rep " + loginID,
		Role:       models.RoleOrganization,
		Company:    company,
		Department: "Talent",
		Position:   "Recruiter",
		Authorized: true,
	})
	if err != nil {
		f.t.Fatalf("failed to create test organization: %v", err)
	}
	return u
}

// CreateStaff creates a staff account.
func (f *Fixtures) CreateStaff(ctx context.Context, loginID string) models.User {
	f.t.Helper()
	u, err := f.Users.Create(ctx, models.User{
		LoginID:    loginID,
		Name:       "Staff " + loginID,
		Role:       models.RoleStaff,
		Department: "Career Centre",
	})
	if err != nil {
		f.t.Fatalf("failed to create test staff: %v", err)
	}
	return u
}

// PostingSpec describes a posting fixture. Zero fields take defaults:
// level BASIC, capacity 1, open 10 days ago, close 30 days ahead.
type PostingSpec struct {
	Title    string
	Major    string
	Level    models.Level
	Capacity int
	Status   models.PostingStatus
	Visible  bool
	Open     time.Time
	Close    time.Time
}

// CreatePosting stores a posting owned by org.
func (f *Fixtures) CreatePosting(ctx context.Context, org models.User, spec PostingSpec) models.Posting {
	f.t.Helper()
	if spec.Title == "" {
		spec.Title = "Software Intern"
	}
	if spec.Major == "" {
		spec.Major = "Computer Science"
	}
	if spec.Level == 0 {
		spec.Level = models.LevelBasic
	}
	if spec.Capacity == 0 {
		spec.Capacity = 1
	}
	if spec.Status == "" {
		spec.Status = models.PostingPending
	}
	if spec.Open.IsZero() {
		spec.Open = Today.AddDate(0, 0, -10)
	}
	if spec.Close.IsZero() {
		spec.Close = Today.AddDate(0, 0, 30)
	}
	p, err := f.Postings.Create(ctx, models.Posting{
		ID:             uuid.New(),
		Title:          spec.Title,
		Description:    spec.Title + " description",
		Level:          spec.Level,
		PreferredMajor: spec.Major,
		Company:        org.Company,
		CreatedBy:      org.ID,
		OpenDate:       spec.Open,
		CloseDate:      spec.Close,
		Capacity:       spec.Capacity,
		Status:         spec.Status,
		Visible:        spec.Visible,
	})
	if err != nil {
		f.t.Fatalf("failed to create test posting: %v", err)
	}
	return p
}

// CreateApprovedPosting stores an APPROVED, visible posting.
func (f *Fixtures) CreateApprovedPosting(ctx context.Context, org models.User, spec PostingSpec) models.Posting {
	f.t.Helper()
	spec.Status = models.PostingApproved
	spec.Visible = true
	return f.CreatePosting(ctx, org, spec)
}

// CreateCandidacy stores a candidacy in the given status.
func (f *Fixtures) CreateCandidacy(ctx context.Context, id string, applicant models.User, posting models.Posting, status models.CandidacyStatus) models.Candidacy {
	f.t.Helper()
	c, err := f.Candidacies.Create(ctx, models.Candidacy{
		ID:          id,
		ApplicantID: applicant.ID,
		PostingID:   posting.ID,
		Status:      status,
		Withdrawn:   status == models.CandidacyWithdrawn,
	})
	if err != nil {
		f.t.Fatalf("failed to create test candidacy: %v", err)
	}
	return c
}

// Posting re-reads a posting from the store.
func (f *Fixtures) Posting(ctx context.Context, id uuid.UUID) models.Posting {
	f.t.Helper()
	p, err := f.Postings.GetByID(ctx, id)
	if err != nil {
		f.t.Fatalf("failed to reload posting: %v", err)
	}
	return p
}

// Candidacy re-reads a candidacy from the store.
func (f *Fixtures) Candidacy(ctx context.Context, id string) models.Candidacy {
	f.t.Helper()
	c, err := f.Candidacies.GetByID(ctx, id)
	if err != nil {
		f.t.Fatalf("failed to reload candidacy: %v", err)
	}
	return c
}
