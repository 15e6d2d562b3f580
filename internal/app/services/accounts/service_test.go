package accounts_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dalemusser/placementhub/internal/app/services/accounts"
	"github.com/dalemusser/placementhub/internal/app/system/apperr"
	"github.com/dalemusser/placementhub/internal/app/system/csvutil"
	"github.com/dalemusser/placementhub/internal/domain/models"
	"github.com/dalemusser/placementhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func newService(t *testing.T) (*accounts.Service, *testutil.Fixtures, context.Context) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	t.Cleanup(cancel)
	f := testutil.NewFixtures(t)
	return accounts.New(f.Users, bcrypt.MinCost), f, ctx
}

func wantKind(t *testing.T, err, kind error) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("err = %v, want kind %v", err, kind)
	}
}

func registration(email string) accounts.Registration {
	return accounts.Registration{
		Email:      email,
		Name:       "Ann Lee",
		Password:   "s3cret!",
		Company:    "Acme",
		Department: "HR",
		Position:   "Recruiter",
	}
}

func TestSeedAndAuthenticate(t *testing.T) {
	svc, _, ctx := newService(t)

	res, err := svc.SeedStudents(ctx, []csvutil.StudentRow{
		{LoginID: "U2310001A", Name: "Tan", Major: "Computer Science", Year: 2},
		{LoginID: "U2310002B", Name: "Ng", Major: "Data Science", Year: 4},
	})
	if err != nil {
		t.Fatalf("SeedStudents: %v", err)
	}
	if res.Created != 2 || len(res.Skipped) != 0 {
		t.Fatalf("SeedStudents = %+v, want 2 created", res)
	}

	u, err := svc.Authenticate(ctx, "u2310001a", "U2310001A")
	if err != nil {
		t.Fatalf("Authenticate with default password: %v", err)
	}
	if u.Role != models.RoleApplicant || u.Year != 2 || u.Major != "Computer Science" {
		t.Errorf("seeded user = %+v", u)
	}
	if u.PasswordHash == "U2310001A" || u.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
}

func TestSeed_SkipsExisting(t *testing.T) {
	svc, _, ctx := newService(t)

	rows := []csvutil.StaffRow{{LoginID: "sng001", Name: "Dr. Sng", Department: "CCDS"}}
	if _, err := svc.SeedStaff(ctx, rows); err != nil {
		t.Fatalf("SeedStaff: %v", err)
	}
	res, err := svc.SeedStaff(ctx, rows)
	if err != nil {
		t.Fatalf("SeedStaff again: %v", err)
	}
	if res.Created != 0 || len(res.Skipped) != 1 || res.Skipped[0] != "sng001" {
		t.Errorf("second seed = %+v, want sng001 skipped", res)
	}
}

func TestSeedReps_Authorization(t *testing.T) {
	svc, _, ctx := newService(t)

	_, err := svc.SeedReps(ctx, []csvutil.RepRow{
		{LoginID: "hr@acme.test", Name: "Ann", Company: "Acme", Authorized: true},
		{LoginID: "jobs@globex.test", Name: "Ben", Company: "Globex"},
	})
	if err != nil {
		t.Fatalf("SeedReps: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "hr@acme.test", "hr@acme.test"); err != nil {
		t.Errorf("authorized rep login: %v", err)
	}
	_, err = svc.Authenticate(ctx, "jobs@globex.test", "jobs@globex.test")
	wantKind(t, err, apperr.ErrUnauthorized)
	if !strings.Contains(err.Error(), "pending") {
		t.Errorf("pending rep error = %q, want pending message", err)
	}
}

func TestAuthenticate_Failures(t *testing.T) {
	svc, _, ctx := newService(t)
	if _, err := svc.SeedStaff(ctx, []csvutil.StaffRow{{LoginID: "staff1", Name: "S"}}); err != nil {
		t.Fatalf("SeedStaff: %v", err)
	}

	tests := []struct {
		name     string
		login    string
		password string
		contains string
	}{
		{"missing login", "", "x", "missing credentials"},
		{"missing password", "staff1", "  ", "missing credentials"},
		{"unknown id", "nobody", "x", "invalid ID"},
		{"wrong password", "staff1", "wrong", "incorrect password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(ctx, tt.login, tt.password)
			wantKind(t, err, apperr.ErrUnauthorized)
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("err = %q, want it to contain %q", err, tt.contains)
			}
		})
	}
}

func TestChangePassword(t *testing.T) {
	svc, _, ctx := newService(t)
	if _, err := svc.SeedStaff(ctx, []csvutil.StaffRow{{LoginID: "staff1", Name: "S"}}); err != nil {
		t.Fatalf("SeedStaff: %v", err)
	}

	wantKind(t, svc.ChangePassword(ctx, "staff1", "", "new"), apperr.ErrValidation)
	wantKind(t, svc.ChangePassword(ctx, "ghost", "a", "b"), apperr.ErrNotFound)
	wantKind(t, svc.ChangePassword(ctx, "staff1", "wrong", "new"), apperr.ErrUnauthorized)
	wantKind(t, svc.ChangePassword(ctx, "staff1", "staff1", "staff1"), apperr.ErrValidation)

	if err := svc.ChangePassword(ctx, "staff1", "staff1", "n3w-pass"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "staff1", "staff1"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("old password still works: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "staff1", "n3w-pass"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestRegisterOrganization(t *testing.T) {
	svc, _, ctx := newService(t)

	u, err := svc.RegisterOrganization(ctx, registration("hr@acme.test"))
	if err != nil {
		t.Fatalf("RegisterOrganization: %v", err)
	}
	if u.Role != models.RoleOrganization || u.Authorized || u.LoginID != "hr@acme.test" || u.Company != "Acme" {
		t.Errorf("registered = %+v", u)
	}

	_, err = svc.Authenticate(ctx, "hr@acme.test", "s3cret!")
	wantKind(t, err, apperr.ErrUnauthorized)

	_, err = svc.RegisterOrganization(ctx, registration("HR@Acme.test"))
	wantKind(t, err, apperr.ErrValidation)
	if !strings.Contains(err.Error(), "already registered") {
		t.Errorf("duplicate err = %q", err)
	}
}

func TestRegisterOrganization_Validation(t *testing.T) {
	svc, _, ctx := newService(t)

	tests := []struct {
		name     string
		mutate   func(r *accounts.Registration)
		contains string
	}{
		{"bad email", func(r *accounts.Registration) { r.Email = "not-an-email" }, "valid email"},
		{"missing company", func(r *accounts.Registration) { r.Company = "  " }, "Company name is required"},
		{"markup-only company", func(r *accounts.Registration) { r.Company = "<b></b>" }, "Company name is required"},
		{"missing password", func(r *accounts.Registration) { r.Password = "" }, "Password is required"},
		{"long password", func(r *accounts.Registration) { r.Password = strings.Repeat("p", 73) }, "at most 72"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := registration("rep@example.test")
			tt.mutate(&r)
			_, err := svc.RegisterOrganization(ctx, r)
			wantKind(t, err, apperr.ErrValidation)
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("err = %q, want it to contain %q", err, tt.contains)
			}
		})
	}
}

func TestOrganizationReview(t *testing.T) {
	svc, f, ctx := newService(t)
	staff := f.CreateStaff(ctx, "staff1")
	applicant := f.CreateApplicant(ctx, "U1", "Physics", 1)

	a, err := svc.RegisterOrganization(ctx, registration("a@acme.test"))
	if err != nil {
		t.Fatalf("register a: %v", err)
	}
	b, err := svc.RegisterOrganization(ctx, registration("b@globex.test"))
	if err != nil {
		t.Fatalf("register b: %v", err)
	}

	_, err = svc.ListPendingOrganizations(ctx, applicant)
	wantKind(t, err, apperr.ErrUnauthorized)

	pending, err := svc.ListPendingOrganizations(ctx, staff)
	if err != nil {
		t.Fatalf("ListPendingOrganizations: %v", err)
	}
	if len(pending) != 2 || pending[0].ID != a.ID || pending[1].ID != b.ID {
		t.Fatalf("pending = %v, want a then b", pending)
	}

	_, err = svc.AuthorizeOrganization(ctx, applicant, a.ID)
	wantKind(t, err, apperr.ErrUnauthorized)

	got, err := svc.AuthorizeOrganization(ctx, staff, a.ID)
	if err != nil {
		t.Fatalf("AuthorizeOrganization: %v", err)
	}
	if !got.Authorized {
		t.Error("account not authorized")
	}
	if _, err := svc.Authenticate(ctx, "a@acme.test", "s3cret!"); err != nil {
		t.Errorf("authorized login: %v", err)
	}
	_, err = svc.AuthorizeOrganization(ctx, staff, a.ID)
	wantKind(t, err, apperr.ErrInvalidState)

	if err := svc.RejectOrganization(ctx, staff, b.ID); err != nil {
		t.Fatalf("RejectOrganization: %v", err)
	}
	_, err = svc.Authenticate(ctx, "b@globex.test", "s3cret!")
	wantKind(t, err, apperr.ErrUnauthorized)
	wantKind(t, svc.RejectOrganization(ctx, staff, b.ID), apperr.ErrNotFound)
	wantKind(t, svc.RejectOrganization(ctx, staff, applicant.ID), apperr.ErrInvalidState)
	wantKind(t, svc.RejectOrganization(ctx, staff, primitive.NewObjectID()), apperr.ErrNotFound)

	pending, err = svc.ListPendingOrganizations(ctx, staff)
	if err != nil {
		t.Fatalf("ListPendingOrganizations: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending = %d, want 0", len(pending))
	}

	// A rejected email can register again.
	if _, err := svc.RegisterOrganization(ctx, registration("b@globex.test")); err != nil {
		t.Errorf("re-register after rejection: %v", err)
	}
}

func TestGet(t *testing.T) {
	svc, f, ctx := newService(t)
	u := f.CreateApplicant(ctx, "U1", "Physics", 2)

	got, err := svc.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.LoginID != "U1" {
		t.Errorf("LoginID = %q, want U1", got.LoginID)
	}
	_, err = svc.Get(ctx, primitive.NewObjectID())
	wantKind(t, err, apperr.ErrNotFound)
}
