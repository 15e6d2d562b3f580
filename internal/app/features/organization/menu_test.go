package organization_test

import (
	"context"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/placementhub/internal/app/features/errors"
	"github.com/dalemusser/placementhub/internal/app/features/filters"
	"github.com/dalemusser/placementhub/internal/app/features/organization"
	"github.com/dalemusser/placementhub/internal/app/store/audit"
	"github.com/dalemusser/placementhub/internal/domain/models"
	"github.com/dalemusser/placementhub/internal/testutil"
	"go.uber.org/zap"
)

type env struct {
	s   *testutil.Stack
	h   *organization.Handler
	org models.User
}

func newEnv(t *testing.T) (*env, context.Context) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	t.Cleanup(cancel)

	s := testutil.NewStack(t)
	h := organization.NewHandler(s.Accounts, s.Postings, s.Candidacies, filters.NewHandler(zap.NewNop()),
		s.AuditLog, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	return &env{s: s, h: h, org: s.CreateOrganization(ctx, "rep@acme.test", "Acme")}, ctx
}

func (e *env) run(t *testing.T, script ...string) string {
	t.Helper()
	p, out := testutil.Script(script...)
	if err := e.h.Run(context.Background(), p, e.org); err != nil {
		t.Fatalf("Run: %v\n%s", err, out.String())
	}
	return out.String()
}

func (e *env) owned(t *testing.T, ctx context.Context) []models.Posting {
	t.Helper()
	ps, err := e.s.Postings.ListOwned(ctx, e.org)
	if err != nil {
		t.Fatalf("ListOwned: %v", err)
	}
	return ps
}

func TestRun_PostingLifecycle(t *testing.T) {
	e, ctx := newEnv(t)

	out := e.run(t,
		"1", "Backend Intern", "<b>Build</b> APIs", "basic", "Computer Science", "2026-11-01", "2026-10-01", "2",
		"5",
		"0",
	)
	if !strings.Contains(out, "Close date must be after open date.") {
		t.Errorf("expected date validation error:\n%s", out)
	}
	if len(e.owned(t, ctx)) != 0 {
		t.Fatal("invalid draft should not be stored")
	}

	out = e.run(t,
		"1", "Backend Intern", "<b>Build</b> APIs", "basic", "Computer Science", "2026-11-01", "2026-12-01", "2",
		"2", "1", "Platform Intern", "", "advanced", "", "", "",
		"4", "1",
		"5",
		"0",
	)
	for _, want := range []string{
		`Created "Backend Intern".`,
		"Internship updated.",
		`"Platform Intern" is now visible to students.`,
		"ADVANCED",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	ps := e.owned(t, ctx)
	if len(ps) != 1 {
		t.Fatalf("owned = %d, want 1", len(ps))
	}
	got := ps[0]
	if got.Title != "Platform Intern" || got.Description != "Build APIs" || got.Level != models.LevelAdvanced || !got.Visible || got.Status != models.PostingPending {
		t.Errorf("posting = %+v", got)
	}

	e.run(t, "3", "1", "y", "0")
	if len(e.owned(t, ctx)) != 0 {
		t.Error("posting should be deleted")
	}

	n, err := e.s.Trail.CountByFilter(ctx, audit.QueryFilter{Category: audit.CategoryLifecycle})
	if err != nil {
		t.Fatalf("CountByFilter: %v", err)
	}
	// failed create, create, edit, visibility, delete
	if n != 5 {
		t.Errorf("lifecycle events = %d, want 5", n)
	}
}

func TestRun_EditOffersOnlyPending(t *testing.T) {
	e, ctx := newEnv(t)
	e.s.CreateApprovedPosting(ctx, e.org, testutil.PostingSpec{Title: "Live Intern"})

	out := e.run(t, "2", "3", "0")

	if !strings.Contains(out, "You have no pending internships to edit.") {
		t.Errorf("edit should offer nothing:\n%s", out)
	}
	if !strings.Contains(out, "You have no pending or rejected internships to delete.") {
		t.Errorf("delete should offer nothing:\n%s", out)
	}
}

func TestRun_ReviewRespectsCapacity(t *testing.T) {
	e, ctx := newEnv(t)
	p := e.s.CreateApprovedPosting(ctx, e.org, testutil.PostingSpec{Title: "Backend Intern", Capacity: 1})
	ada := e.s.CreateApplicant(ctx, "s100", "Computer Science", 3)
	bob := e.s.CreateApplicant(ctx, "s200", "Computer Science", 2)
	e.s.CreateCandidacy(ctx, "APP-1", ada, p, models.CandidacyPending)
	e.s.CreateCandidacy(ctx, "APP-2", bob, p, models.CandidacyPending)

	out := e.run(t,
		"6", "1",
		"1", "1",
		"1", "1",
		"0",
		"0",
	)

	for _, want := range []string{
		"APP-1  Applicant s100 (s100, year 3, Computer Science)",
		"APP-1 approved.",
		"Not allowed right now:",
		`"Backend Intern": 1 of 1 places filled.`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if got := e.s.Posting(ctx, p.ID); got.Filled != 1 || got.Status != models.PostingFilled {
		t.Errorf("posting = %d filled, %s; want 1, FILLED", got.Filled, got.Status)
	}
	if c := e.s.Candidacy(ctx, "APP-2"); c.Status != models.CandidacyPending {
		t.Errorf("APP-2 = %s, want PENDING", c.Status)
	}

	failed := false
	events, err := e.s.Trail.Query(ctx, audit.QueryFilter{EventType: audit.EventCandidacyApproved})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	for _, ev := range events {
		if !ev.Success && ev.CandidacyID == "APP-2" {
			failed = true
		}
	}
	if len(events) != 2 || !failed {
		t.Errorf("approval events = %+v", events)
	}
}

func TestRun_RejectApplication(t *testing.T) {
	e, ctx := newEnv(t)
	p := e.s.CreateApprovedPosting(ctx, e.org, testutil.PostingSpec{Title: "Backend Intern"})
	ada := e.s.CreateApplicant(ctx, "s100", "Computer Science", 3)
	e.s.CreateCandidacy(ctx, "APP-1", ada, p, models.CandidacyPending)

	out := e.run(t, "6", "1", "1", "2", "0")

	if !strings.Contains(out, "APP-1 rejected.") || !strings.Contains(out, "No pending applications") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if c := e.s.Candidacy(ctx, "APP-1"); c.Status != models.CandidacyUnsuccessful {
		t.Errorf("APP-1 = %s, want UNSUCCESSFUL", c.Status)
	}
}
