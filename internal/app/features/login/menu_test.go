package login_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	uierrors "github.com/dalemusser/placementhub/internal/app/features/errors"
	"github.com/dalemusser/placementhub/internal/app/features/login"
	"github.com/dalemusser/placementhub/internal/app/services/accounts"
	"github.com/dalemusser/placementhub/internal/app/store/audit"
	"github.com/dalemusser/placementhub/internal/app/system/auditlog"
	"github.com/dalemusser/placementhub/internal/app/system/csvutil"
	"github.com/dalemusser/placementhub/internal/app/system/prompt"
	"github.com/dalemusser/placementhub/internal/app/system/ratelimit"
	"github.com/dalemusser/placementhub/internal/domain/models"
	"github.com/dalemusser/placementhub/internal/testutil"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type recordingDashboard struct {
	users []models.User
}

func (d *recordingDashboard) Run(_ context.Context, p *prompt.Prompter, u models.User) error {
	d.users = append(d.users, u)
	p.Println("  [dashboard]")
	return nil
}

type env struct {
	handler *login.Handler
	accts   *accounts.Service
	trail   *audit.Store
	dash    *recordingDashboard
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t)
	accts := accounts.New(f.Users, bcrypt.MinCost)
	if _, err := accts.SeedStudents(ctx, []csvutil.StudentRow{
		{LoginID: "s100", Name: "Ada", Major: "Computer Science", Year: 3, Email: "ada@example.com"},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	trail := audit.New(audit.DefaultCapacity)
	audits := auditlog.New(trail, zap.NewNop(), auditlog.Config{Auth: auditlog.ModeAll, Lifecycle: auditlog.ModeAll})
	dash := &recordingDashboard{}
	h := login.NewHandler(accts, audits, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop(),
		map[models.Role]login.Dashboard{models.RoleApplicant: dash})
	return &env{handler: h, accts: accts, trail: trail, dash: dash}
}

func (e *env) run(t *testing.T, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	p := prompt.New(strings.NewReader(strings.Join(script, "\n")+"\n"), &out)
	if err := e.handler.Run(context.Background(), p); err != nil {
		t.Fatalf("Run: %v\n%s", err, out.String())
	}
	return out.String()
}

func TestRun_LoginDispatchesByRole(t *testing.T) {
	e := newEnv(t)

	out := e.run(t,
		"1", "s100", "wrong",
		"1", "s100", "s100",
		"0",
	)

	if !strings.Contains(out, "Access denied: incorrect password") {
		t.Errorf("expected refused login:\n%s", out)
	}
	if len(e.dash.users) != 1 || e.dash.users[0].LoginID != "s100" {
		t.Fatalf("dashboard runs = %v", e.dash.users)
	}
	if !strings.Contains(out, "Welcome, Ada.") || !strings.Contains(out, "Goodbye.") {
		t.Errorf("unexpected output:\n%s", out)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	failed, err := e.trail.GetFailedLogins(ctx, time.Time{}, 10)
	if err != nil {
		t.Fatalf("GetFailedLogins: %v", err)
	}
	if len(failed) != 1 {
		t.Errorf("failed logins = %d, want 1", len(failed))
	}
}

func TestRun_RoleWithoutDashboard(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if _, err := e.accts.SeedStaff(ctx, []csvutil.StaffRow{{LoginID: "cc1", Name: "Grace", Role: "staff", Department: "Careers"}}); err != nil {
		t.Fatalf("seed staff: %v", err)
	}

	out := e.run(t, "1", "cc1", "cc1", "0")
	if !strings.Contains(out, "There is no menu for your account type.") {
		t.Errorf("expected missing dashboard message:\n%s", out)
	}
}

func TestRun_RegisterThenPendingLogin(t *testing.T) {
	e := newEnv(t)

	out := e.run(t,
		"2", "rep@acme.example", "Rita", "secret", "Acme", "Talent", "Recruiter",
		"1", "rep@acme.example", "secret",
		"0",
	)
	if !strings.Contains(out, "Registration received.") {
		t.Errorf("expected registration confirmation:\n%s", out)
	}
	if !strings.Contains(out, "pending approval") {
		t.Errorf("pending organization should be refused:\n%s", out)
	}
	if len(e.dash.users) != 0 {
		t.Errorf("dashboard should not run, got %v", e.dash.users)
	}
}

func TestRun_ChangePassword(t *testing.T) {
	e := newEnv(t)

	out := e.run(t,
		"3", "s100", "s100", "new-pass", "typo",
		"3", "s100", "s100", "new-pass", "new-pass",
		"0",
	)
	if !strings.Contains(out, "do not match") || !strings.Contains(out, "Password changed.") {
		t.Errorf("unexpected output:\n%s", out)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if _, err := e.accts.Authenticate(ctx, "s100", "new-pass"); err != nil {
		t.Errorf("new password should authenticate: %v", err)
	}
}

func TestRun_EndOfInputQuits(t *testing.T) {
	e := newEnv(t)
	var out bytes.Buffer
	p := prompt.New(strings.NewReader("1\ns100\n"), &out)
	if err := e.handler.Run(context.Background(), p); err != nil {
		t.Errorf("Run = %v, want nil at end of input", err)
	}
}

func TestRun_ThrottlesFailedLogins(t *testing.T) {
	e := newEnv(t)
	e.handler.Attempts = ratelimit.New(2, 15*time.Minute, nil)

	out := e.run(t,
		"1", "s100", "bad1",
		"1", "S100", "bad2",
		"1", "s100", "s100",
		"0",
	)
	if !strings.Contains(out, "too many failed attempts") {
		t.Errorf("third login should be throttled:\n%s", out)
	}
	if len(e.dash.users) != 0 {
		t.Errorf("dashboard should not run while throttled, got %v", e.dash.users)
	}

	e.handler.Attempts.Reset("s100")
	e.run(t, "1", "s100", "s100", "0")
	if len(e.dash.users) != 1 {
		t.Errorf("dashboard runs after reset = %d, want 1", len(e.dash.users))
	}
}
