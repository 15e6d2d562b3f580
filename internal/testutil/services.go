package testutil

import (
	"testing"

	"github.com/dalemusser/placementhub/internal/app/services/accounts"
	"github.com/dalemusser/placementhub/internal/app/services/candidacies"
	"github.com/dalemusser/placementhub/internal/app/services/postings"
	"github.com/dalemusser/placementhub/internal/app/store/audit"
	"github.com/dalemusser/placementhub/internal/app/system/auditlog"
	"github.com/dalemusser/placementhub/internal/app/system/idgen"
	"github.com/dalemusser/placementhub/internal/app/system/keylock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Stack is the full service layer over a fresh set of fixtures, for menu
// tests that drive several services at once.
type Stack struct {
	*Fixtures

	Accounts    *accounts.Service
	Postings    *postings.Service
	Candidacies *candidacies.Orchestrator
	Trail       *audit.Store
	AuditLog    *auditlog.Logger
}

// NewStack wires every service the way bootstrap does, with the cheapest
// bcrypt cost and an audit trail that records everything.
func NewStack(t *testing.T) *Stack {
	t.Helper()
	f := NewFixtures(t)
	locks := keylock.New()
	ids := idgen.New(f.Clock)
	orch := candidacies.New(f.Postings, f.Candidacies, ids, f.Clock, locks, candidacies.DefaultOptions())
	trail := audit.New(audit.DefaultCapacity)
	return &Stack{
		Fixtures:    f,
		Accounts:    accounts.New(f.Users, bcrypt.MinCost),
		Postings:    postings.New(f.Postings, f.Candidacies, orch, ids, f.Clock, locks, postings.DefaultQuota),
		Candidacies: orch,
		Trail:       trail,
		AuditLog: auditlog.New(trail, zap.NewNop(), auditlog.Config{
			Auth:      auditlog.ModeAll,
			Lifecycle: auditlog.ModeAll,
		}),
	}
}
