// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/placementhub/internal/app/store/audit"
	candidacystore "github.com/dalemusser/placementhub/internal/app/store/candidacies"
	postingstore "github.com/dalemusser/placementhub/internal/app/store/postings"
	userstore "github.com/dalemusser/placementhub/internal/app/store/users"
	"github.com/dalemusser/placementhub/internal/app/system/auditlog"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB creates the stores. The audit trail is only kept when the
// audit mode asks for it.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	deps := DBDeps{
		Users:       userstore.New(),
		Postings:    postingstore.New(),
		Candidacies: candidacystore.New(),
	}
	if appCfg.AuditLog == auditlog.ModeAll {
		deps.Trail = audit.New(audit.DefaultCapacity)
	}
	logger.Debug("stores ready", zap.Bool("audit_trail", deps.Trail != nil))
	return deps, nil
}
