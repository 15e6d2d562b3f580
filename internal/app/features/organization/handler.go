// internal/app/features/organization/handler.go
package organization

import (
	"context"
	"time"

	uierrors "github.com/dalemusser/placementhub/internal/app/features/errors"
	"github.com/dalemusser/placementhub/internal/app/features/filters"
	"github.com/dalemusser/placementhub/internal/app/services/accounts"
	"github.com/dalemusser/placementhub/internal/app/services/candidacies"
	"github.com/dalemusser/placementhub/internal/app/services/postings"
	"github.com/dalemusser/placementhub/internal/app/system/auditlog"
	"github.com/dalemusser/placementhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler is the company representative dashboard.
type Handler struct {
	Accounts    *accounts.Service // applicant names on review lists
	Postings    *postings.Service
	Candidacies *candidacies.Orchestrator
	Filters     *filters.Handler
	AuditLog    *auditlog.Logger
	ErrLog      *uierrors.ErrorLogger
	Log         *zap.Logger
}

func NewHandler(acct *accounts.Service, ps *postings.Service, cs *candidacies.Orchestrator, fh *filters.Handler, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Accounts:    acct,
		Postings:    ps,
		Candidacies: cs,
		Filters:     fh,
		AuditLog:    audit,
		ErrLog:      errLog,
		Log:         logger,
	}
}

func (h *Handler) op(ctx context.Context, d time.Duration, name string) (context.Context, context.CancelFunc) {
	return timeouts.WithTimeout(ctx, d, h.Log, name)
}
