// internal/app/bootstrap/logger.go
package bootstrap

import (
	"go.uber.org/zap"
)

// NewLogger builds the process logger: JSON lines on stderr so they never
// interleave with the menus on stdout.
func NewLogger(level zap.AtomicLevel) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	return cfg.Build()
}
