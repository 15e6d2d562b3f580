// internal/app/features/login/handler.go
package login

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record
//   - LoginID / loginID / login_id: The human-readable string users type to log in

import (
	"context"

	uierrors "github.com/dalemusser/placementhub/internal/app/features/errors"
	"github.com/dalemusser/placementhub/internal/app/services/accounts"
	"github.com/dalemusser/placementhub/internal/app/system/auditlog"
	"github.com/dalemusser/placementhub/internal/app/system/prompt"
	"github.com/dalemusser/placementhub/internal/app/system/ratelimit"
	"github.com/dalemusser/placementhub/internal/domain/models"
	"go.uber.org/zap"
)

// Dashboard is the menu a logged-in user lands on. Run returns when the
// user logs out.
type Dashboard interface {
	Run(ctx context.Context, p *prompt.Prompter, u models.User) error
}

type Handler struct {
	Accounts *accounts.Service
	AuditLog *auditlog.Logger
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger

	// Attempts throttles failed logins per login id. Nil disables it.
	Attempts *ratelimit.Limiter

	// Dashboards maps each role to its menu. A role without an entry
	// can log in but has nothing to do.
	Dashboards map[models.Role]Dashboard
}

func NewHandler(acct *accounts.Service, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger, dashboards map[models.Role]Dashboard) *Handler {
	return &Handler{
		Accounts:   acct,
		AuditLog:   audit,
		ErrLog:     errLog,
		Log:        logger,
		Dashboards: dashboards,
	}
}
