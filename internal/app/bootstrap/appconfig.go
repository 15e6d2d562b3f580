// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds the application configuration for PlacementHub.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig is loaded
// alongside but only its environment name is used; PlacementHub has no
// HTTP surface.
type AppConfig struct {
	// Seed files, loaded once at startup. A blank path skips that file.
	StudentsCSV string // id,name,major,year,email
	StaffCSV    string // id,name,role,department,email
	RepsCSV     string // id,name,company,department,position,email,status

	// Lifecycle limits
	PostingQuota         int // internships one company account may own
	MaxActiveCandidacies int // PENDING or SUCCESSFUL applications per student
	JuniorYearMax        int // last year of study restricted to BASIC internships

	BcryptCost int // cost for password hashes

	// Failed logins allowed per login id before further attempts are
	// refused until the window ends.
	LoginAttempts int
	LoginWindow   time.Duration

	// AuditLog is one of "all" (trail + log), "log" or "off". It applies
	// to both authentication and lifecycle events.
	AuditLog string

	LogLevel string // zap level name: debug, info, warn, error
}
