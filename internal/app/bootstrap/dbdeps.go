// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/placementhub/internal/app/store/audit"
	candidacystore "github.com/dalemusser/placementhub/internal/app/store/candidacies"
	postingstore "github.com/dalemusser/placementhub/internal/app/store/postings"
	userstore "github.com/dalemusser/placementhub/internal/app/store/users"
)

// DBDeps holds the stores backing one run. Records live in memory for the
// life of the process.
type DBDeps struct {
	Users       *userstore.Store
	Postings    *postingstore.Store
	Candidacies *candidacystore.Store
	Trail       *audit.Store
}
