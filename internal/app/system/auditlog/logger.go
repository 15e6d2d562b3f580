// internal/app/system/auditlog/logger.go
package auditlog

// Terminology: User Identifiers
//   - UserID / userID / user_id: The ObjectID (_id) that uniquely identifies a user record
//   - LoginID / loginID / login_id: The human-readable string users type to log in

import (
	"context"
	"strconv"

	"github.com/dalemusser/placementhub/internal/app/store/audit"
	"github.com/dalemusser/placementhub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Logging modes.
const (
	ModeAll = "all" // audit trail + zap
	ModeLog = "log" // zap only
	ModeOff = "off" // disabled
)

// Modes lists every accepted mode.
var Modes = []string{ModeAll, ModeLog, ModeOff}

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for authentication events (login, password, organization accounts).
	Auth string
	// Lifecycle controls logging for posting and candidacy events.
	Lifecycle string
}

// Logger provides convenience methods for logging audit events.
// It logs to the in-memory trail (via audit.Store) and structured logs (via zap).
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// Trail returns the store backing mode "all", or nil when no category
// writes to it.
func (l *Logger) Trail() *audit.Store {
	if l == nil || (l.config.Auth != ModeAll && l.config.Lifecycle != ModeAll) {
		return nil
	}
	return l.store
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
	}

	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.UserID != nil {
		fields = append(fields, zap.String("user_id", event.UserID.Hex()))
	}
	if event.PostingID != "" {
		fields = append(fields, zap.String("posting_id", event.PostingID))
	}
	if event.CandidacyID != "" {
		fields = append(fields, zap.String("candidacy_id", event.CandidacyID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
// Logging destination is controlled by config: "all", "log", or "off".
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryLifecycle:
		setting = l.config.Lifecycle
	default:
		setting = ModeAll
	}

	if setting == ModeOff {
		return
	}

	if setting == ModeAll || setting == ModeLog {
		l.logToZap(event)
	}

	if setting == ModeAll && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// outcome fills Success and FailureReason from err.
func outcome(e *audit.Event, err error) {
	e.Success = err == nil
	if err != nil {
		e.FailureReason = err.Error()
	}
}

func idPtr(id primitive.ObjectID) *primitive.ObjectID {
	if id.IsZero() {
		return nil
	}
	return &id
}

// --- Authentication Events ---

// LoginSuccess logs a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, u models.User) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		ActorID:   idPtr(u.ID),
		Success:   true,
		Details: map[string]string{
			"login_id": u.LoginID,
			"role":     string(u.Role),
		},
	})
}

// LoginFailed logs a refused login attempt.
func (l *Logger) LoginFailed(ctx context.Context, attemptedLoginID string, err error) {
	e := audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginFailed,
		Details: map[string]string{
			"attempted_login_id": attemptedLoginID,
		},
	}
	outcome(&e, err)
	l.Log(ctx, e)
}

// PasswordChanged logs a password change attempt.
func (l *Logger) PasswordChanged(ctx context.Context, loginID string, err error) {
	e := audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventPasswordChanged,
		Details: map[string]string{
			"login_id": loginID,
		},
	}
	outcome(&e, err)
	l.Log(ctx, e)
}

// OrganizationRegistered logs a self-service organization sign-up.
func (l *Logger) OrganizationRegistered(ctx context.Context, u models.User, email string, err error) {
	e := audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventOrganizationRegistered,
		UserID:    idPtr(u.ID),
		Details: map[string]string{
			"email": email,
		},
	}
	outcome(&e, err)
	l.Log(ctx, e)
}

// OrganizationReviewed logs a staff decision on a pending organization account.
func (l *Logger) OrganizationReviewed(ctx context.Context, actor models.User, targetID primitive.ObjectID, authorized bool, err error) {
	eventType := audit.EventOrganizationRejected
	if authorized {
		eventType = audit.EventOrganizationAuthorized
	}
	e := audit.Event{
		Category:  audit.CategoryAuth,
		EventType: eventType,
		ActorID:   idPtr(actor.ID),
		UserID:    idPtr(targetID),
	}
	outcome(&e, err)
	l.Log(ctx, e)
}

// AccountsSeeded logs one seed file load.
func (l *Logger) AccountsSeeded(ctx context.Context, file string, created, skipped, rowErrors int) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventAccountsSeeded,
		Success:   rowErrors == 0,
		Details: map[string]string{
			"file":       file,
			"created":    intToString(created),
			"skipped":    intToString(skipped),
			"row_errors": intToString(rowErrors),
		},
	})
}

// --- Lifecycle Events ---

// Posting logs a posting operation. eventType is one of the audit.EventPosting* constants.
func (l *Logger) Posting(ctx context.Context, eventType string, actor models.User, postingID uuid.UUID, err error) {
	e := audit.Event{
		Category:  audit.CategoryLifecycle,
		EventType: eventType,
		ActorID:   idPtr(actor.ID),
		Details: map[string]string{
			"actor_role": string(actor.Role),
		},
	}
	if postingID != uuid.Nil {
		e.PostingID = postingID.String()
	}
	outcome(&e, err)
	l.Log(ctx, e)
}

// PostingVisibility logs a visibility toggle.
func (l *Logger) PostingVisibility(ctx context.Context, actor models.User, postingID uuid.UUID, visible bool, err error) {
	e := audit.Event{
		Category:  audit.CategoryLifecycle,
		EventType: audit.EventPostingVisibility,
		ActorID:   idPtr(actor.ID),
		PostingID: postingID.String(),
		Details: map[string]string{
			"actor_role": string(actor.Role),
			"visible":    boolToString(visible),
		},
	}
	outcome(&e, err)
	l.Log(ctx, e)
}

// Candidacy logs a candidacy operation. eventType is one of the
// audit.EventCandidacy*, EventOfferAccepted or EventWithdrawal* constants.
// postingID may be uuid.Nil when the operation failed before it was known.
func (l *Logger) Candidacy(ctx context.Context, eventType string, actor models.User, candidacyID string, postingID uuid.UUID, err error) {
	e := audit.Event{
		Category:    audit.CategoryLifecycle,
		EventType:   eventType,
		ActorID:     idPtr(actor.ID),
		CandidacyID: candidacyID,
		Details: map[string]string{
			"actor_role": string(actor.Role),
		},
	}
	if postingID != uuid.Nil {
		e.PostingID = postingID.String()
	}
	outcome(&e, err)
	l.Log(ctx, e)
}

func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func intToString(i int) string {
	return strconv.Itoa(i)
}
