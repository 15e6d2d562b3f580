// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"slices"
	"time"

	"github.com/dalemusser/placementhub/internal/app/system/auditlog"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/bcrypt"
)

// appConfigKeys defines the configuration keys for PlacementHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: students_csv, posting_quota, etc.
//   - Environment variables: PLACEMENTHUB_STUDENTS_CSV, PLACEMENTHUB_POSTING_QUOTA, etc.
//   - Command-line flags: --students_csv, --posting_quota, etc.
var appConfigKeys = []config.AppKey{
	// Seed files
	{Name: "students_csv", Default: "students.csv", Desc: "Student accounts CSV (blank to skip)"},
	{Name: "staff_csv", Default: "staff.csv", Desc: "Career centre staff CSV (blank to skip)"},
	{Name: "reps_csv", Default: "reps.csv", Desc: "Company representative CSV (blank to skip)"},

	// Lifecycle limits
	{Name: "posting_quota", Default: 5, Desc: "Internships one company account may own (default: 5)"},
	{Name: "max_active_candidacies", Default: 3, Desc: "Active applications per student (default: 3)"},
	{Name: "junior_year_max", Default: 2, Desc: "Last year of study limited to BASIC internships (default: 2)"},

	// Security
	{Name: "bcrypt_cost", Default: 12, Desc: "bcrypt cost for password hashes (default: 12)"},
	{Name: "login_attempts", Default: 5, Desc: "Failed logins allowed per login id within login_window (default: 5)"},
	{Name: "login_window", Default: "15m", Desc: "Failed-login window (e.g., 15m, 1h)"},

	// Audit logging settings
	{Name: "audit_log", Default: "log", Desc: "Audit event logging: 'all' (trail+log), 'log', or 'off'"},

	// Logging
	{Name: "log_level", Default: "warn", Desc: "Log level: debug, info, warn, error"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, PLACEMENTHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "PLACEMENTHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		StudentsCSV: appValues.String("students_csv"),
		StaffCSV:    appValues.String("staff_csv"),
		RepsCSV:     appValues.String("reps_csv"),

		PostingQuota:         appValues.Int("posting_quota"),
		MaxActiveCandidacies: appValues.Int("max_active_candidacies"),
		JuniorYearMax:        appValues.Int("junior_year_max"),

		BcryptCost:    appValues.Int("bcrypt_cost"),
		LoginAttempts: appValues.Int("login_attempts"),
		LoginWindow:   appValues.Duration("login_window", 15*time.Minute),

		AuditLog: appValues.String("audit_log"),
		LogLevel: appValues.String("log_level"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// Limits must be positive, the bcrypt cost must be one bcrypt accepts, and
// the audit mode and log level must be known names.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	limits := []struct {
		key string
		val int
	}{
		{"posting_quota", appCfg.PostingQuota},
		{"max_active_candidacies", appCfg.MaxActiveCandidacies},
		{"junior_year_max", appCfg.JuniorYearMax},
		{"login_attempts", appCfg.LoginAttempts},
	}
	for _, l := range limits {
		if l.val <= 0 {
			return fmt.Errorf("%s must be positive, got %d", l.key, l.val)
		}
	}

	if appCfg.LoginWindow <= 0 {
		return fmt.Errorf("login_window must be positive, got %s", appCfg.LoginWindow)
	}

	if appCfg.BcryptCost < bcrypt.MinCost || appCfg.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, appCfg.BcryptCost)
	}

	if !slices.Contains(auditlog.Modes, appCfg.AuditLog) {
		return fmt.Errorf("audit_log must be one of %v, got %q", auditlog.Modes, appCfg.AuditLog)
	}

	if _, err := zapcore.ParseLevel(appCfg.LogLevel); err != nil {
		logger.Error("invalid log level", zap.String("log_level", appCfg.LogLevel), zap.Error(err))
		return fmt.Errorf("invalid log_level: %w", err)
	}

	return nil
}
