// internal/app/bootstrap/services.go
package bootstrap

import (
	"github.com/dalemusser/placementhub/internal/app/services/accounts"
	"github.com/dalemusser/placementhub/internal/app/services/candidacies"
	"github.com/dalemusser/placementhub/internal/app/services/postings"
	"github.com/dalemusser/placementhub/internal/app/system/auditlog"
	"github.com/dalemusser/placementhub/internal/app/system/clock"
	"github.com/dalemusser/placementhub/internal/app/system/idgen"
	"github.com/dalemusser/placementhub/internal/app/system/keylock"
	"go.uber.org/zap"
)

// Services bundles the service layer shared by every menu.
type Services struct {
	Accounts    *accounts.Service
	Postings    *postings.Service
	Candidacies *candidacies.Orchestrator
	AuditLog    *auditlog.Logger
}

// BuildServices wires the services over deps. The posting service and the
// orchestrator share one Locker and one id generator.
func BuildServices(appCfg AppConfig, deps DBDeps, logger *zap.Logger) Services {
	clk := clock.System{}
	locks := keylock.New()
	ids := idgen.New(clk)

	orch := candidacies.New(deps.Postings, deps.Candidacies, ids, clk, locks, candidacies.Options{
		MaxActive:     appCfg.MaxActiveCandidacies,
		JuniorYearMax: appCfg.JuniorYearMax,
	})
	return Services{
		Accounts:    accounts.New(deps.Users, appCfg.BcryptCost),
		Postings:    postings.New(deps.Postings, deps.Candidacies, orch, ids, clk, locks, appCfg.PostingQuota),
		Candidacies: orch,
		AuditLog: auditlog.New(deps.Trail, logger, auditlog.Config{
			Auth:      appCfg.AuditLog,
			Lifecycle: appCfg.AuditLog,
		}),
	}
}
