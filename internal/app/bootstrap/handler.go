// internal/app/bootstrap/handler.go
package bootstrap

import (
	applicantfeature "github.com/dalemusser/placementhub/internal/app/features/applicant"
	errorsfeature "github.com/dalemusser/placementhub/internal/app/features/errors"
	filtersfeature "github.com/dalemusser/placementhub/internal/app/features/filters"
	loginfeature "github.com/dalemusser/placementhub/internal/app/features/login"
	organizationfeature "github.com/dalemusser/placementhub/internal/app/features/organization"
	stafffeature "github.com/dalemusser/placementhub/internal/app/features/staff"
	"github.com/dalemusser/placementhub/internal/app/system/clock"
	"github.com/dalemusser/placementhub/internal/app/system/ratelimit"
	"github.com/dalemusser/placementhub/internal/domain/models"
	"go.uber.org/zap"
)

// BuildHandler constructs the start menu with one dashboard per role.
//
// Each role's dashboard is registered in the table passed to the login
// handler; adding a role means adding a row here.
func BuildHandler(appCfg AppConfig, svc Services, logger *zap.Logger) *loginfeature.Handler {
	errLog := errorsfeature.NewErrorLogger(logger)
	filters := filtersfeature.NewHandler(logger)

	dashboards := map[models.Role]loginfeature.Dashboard{
		models.RoleApplicant:    applicantfeature.NewHandler(svc.Postings, svc.Candidacies, filters, svc.AuditLog, errLog, logger),
		models.RoleOrganization: organizationfeature.NewHandler(svc.Accounts, svc.Postings, svc.Candidacies, filters, svc.AuditLog, errLog, logger),
		models.RoleStaff:        stafffeature.NewHandler(svc.Accounts, svc.Postings, svc.Candidacies, filters, svc.AuditLog, errLog, logger),
	}
	h := loginfeature.NewHandler(svc.Accounts, svc.AuditLog, errLog, logger, dashboards)
	h.Attempts = ratelimit.New(appCfg.LoginAttempts, appCfg.LoginWindow, clock.System{})
	return h
}
