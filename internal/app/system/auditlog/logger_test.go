package auditlog_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/placementhub/internal/app/store/audit"
	"github.com/dalemusser/placementhub/internal/app/system/auditlog"
	"github.com/dalemusser/placementhub/internal/domain/models"
	"github.com/dalemusser/placementhub/internal/testutil"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(cfg auditlog.Config) (*auditlog.Logger, *audit.Store, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	store := audit.New(0)
	return auditlog.New(store, zap.New(core), cfg), store, logs
}

func TestLogger_NilLogger(t *testing.T) {
	// nil logger should be a no-op (not panic)
	var logger *auditlog.Logger
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger.Log(ctx, audit.Event{EventType: "test"})
	logger.LoginSuccess(ctx, models.User{ID: primitive.NewObjectID()})
	logger.Posting(ctx, audit.EventPostingCreated, models.User{}, uuid.New(), nil)
	if logger.Trail() != nil {
		t.Error("nil logger should have no trail")
	}
}

func TestLogger_Log_ConfigOff(t *testing.T) {
	logger, store, logs := observed(auditlog.Config{Auth: "off", Lifecycle: "off"})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger.Log(ctx, audit.Event{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, Success: true})
	logger.Log(ctx, audit.Event{Category: audit.CategoryLifecycle, EventType: audit.EventPostingCreated, Success: true})

	if logs.Len() != 0 {
		t.Errorf("expected no zap entries when config is 'off', got %d", logs.Len())
	}
	if n, _ := store.CountByFilter(ctx, audit.QueryFilter{}); n != 0 {
		t.Errorf("expected no trail events when config is 'off', got %d", n)
	}
}

func TestLogger_Log_ConfigLog(t *testing.T) {
	logger, store, logs := observed(auditlog.Config{Auth: "log", Lifecycle: "log"})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger.Log(ctx, audit.Event{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, Success: true})

	if logs.Len() != 1 {
		t.Errorf("expected 1 zap entry, got %d", logs.Len())
	}
	if n, _ := store.CountByFilter(ctx, audit.QueryFilter{}); n != 0 {
		t.Errorf("mode 'log' should not write the trail, got %d events", n)
	}
}

func TestLogger_Log_ConfigAll(t *testing.T) {
	logger, store, logs := observed(auditlog.Config{Auth: "all", Lifecycle: "all"})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger.Log(ctx, audit.Event{Category: audit.CategoryLifecycle, EventType: audit.EventPostingCreated, Success: true})

	if logs.Len() != 1 {
		t.Errorf("expected 1 zap entry, got %d", logs.Len())
	}
	if n, _ := store.CountByFilter(ctx, audit.QueryFilter{}); n != 1 {
		t.Errorf("expected 1 trail event, got %d", n)
	}
	if logger.Trail() != store {
		t.Error("Trail() should return the backing store")
	}
}

func TestLogger_CategoryFilteredByConfig(t *testing.T) {
	logger, _, logs := observed(auditlog.Config{Auth: "off", Lifecycle: "log"})
	if logger.Trail() != nil {
		t.Error("no category writes the trail, Trail() should be nil")
	}
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger.LoginSuccess(ctx, models.User{ID: primitive.NewObjectID(), LoginID: "staff1", Role: models.RoleStaff})
	logger.Posting(ctx, audit.EventPostingApproved, models.User{ID: primitive.NewObjectID()}, uuid.New(), nil)

	if logs.Len() != 1 {
		t.Fatalf("expected only the lifecycle entry, got %d", logs.Len())
	}
	if got := logs.All()[0].ContextMap()["event_type"]; got != audit.EventPostingApproved {
		t.Errorf("event_type = %v, want %s", got, audit.EventPostingApproved)
	}
}

func TestLogger_CandidacyFields(t *testing.T) {
	logger, store, logs := observed(auditlog.Config{Auth: "all", Lifecycle: "all"})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	actor := models.User{ID: primitive.NewObjectID(), Role: models.RoleApplicant}
	postingID := uuid.New()
	logger.Candidacy(ctx, audit.EventCandidacySubmitted, actor, "APP-20261019-0001", postingID, nil)

	entry := logs.All()[0]
	if entry.Level != zapcore.InfoLevel {
		t.Errorf("level = %v, want info", entry.Level)
	}
	fields := entry.ContextMap()
	want := map[string]any{
		"audit":        true,
		"event_type":   audit.EventCandidacySubmitted,
		"actor_id":     actor.ID.Hex(),
		"posting_id":   postingID.String(),
		"candidacy_id": "APP-20261019-0001",
		"success":      true,
	}
	for k, v := range want {
		if fields[k] != v {
			t.Errorf("field %s = %v, want %v", k, fields[k], v)
		}
	}
	if _, ok := fields["failure_reason"]; ok {
		t.Error("successful event should not carry failure_reason")
	}

	events, _ := store.GetByActor(ctx, actor.ID, 10)
	if len(events) != 1 || events[0].CandidacyID != "APP-20261019-0001" {
		t.Errorf("trail = %+v", events)
	}
}

func TestLogger_FailureIsWarn(t *testing.T) {
	logger, store, logs := observed(auditlog.Config{Auth: "all", Lifecycle: "all"})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger.LoginFailed(ctx, "ghost", errors.New("invalid ID"))

	entry := logs.All()[0]
	if entry.Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", entry.Level)
	}
	fields := entry.ContextMap()
	if fields["failure_reason"] != "invalid ID" {
		t.Errorf("failure_reason = %v", fields["failure_reason"])
	}
	if fields["detail_attempted_login_id"] != "ghost" {
		t.Errorf("detail_attempted_login_id = %v", fields["detail_attempted_login_id"])
	}

	failed, _ := store.GetFailedLogins(ctx, time.Time{}, 10)
	if len(failed) != 1 {
		t.Errorf("expected 1 failed login in trail, got %d", len(failed))
	}
}

func TestLogger_OrganizationReviewed(t *testing.T) {
	logger, store, _ := observed(auditlog.Config{Auth: "all"})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	staff := models.User{ID: primitive.NewObjectID(), Role: models.RoleStaff}
	target := primitive.NewObjectID()
	logger.OrganizationReviewed(ctx, staff, target, true, nil)
	logger.OrganizationReviewed(ctx, staff, target, false, nil)

	events, _ := store.GetByActor(ctx, staff.ID, 10)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].EventType != audit.EventOrganizationRejected || events[1].EventType != audit.EventOrganizationAuthorized {
		t.Errorf("event types = %s, %s", events[0].EventType, events[1].EventType)
	}
	if events[0].UserID == nil || *events[0].UserID != target {
		t.Error("target user id not recorded")
	}
}

func TestLogger_AccountsSeeded(t *testing.T) {
	logger, _, logs := observed(auditlog.Config{Auth: "log"})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger.AccountsSeeded(ctx, "students.csv", 10, 1, 2)

	fields := logs.All()[0].ContextMap()
	if fields["success"] != false {
		t.Error("row errors should mark the event unsuccessful")
	}
	if fields["detail_created"] != "10" || fields["detail_row_errors"] != "2" {
		t.Errorf("details = %v", fields)
	}
}

func TestConfig_Defaults(t *testing.T) {
	config := auditlog.Config{}
	if config.Auth != "" {
		t.Errorf("expected empty default Auth, got %q", config.Auth)
	}
	if config.Lifecycle != "" {
		t.Errorf("expected empty default Lifecycle, got %q", config.Lifecycle)
	}
}
