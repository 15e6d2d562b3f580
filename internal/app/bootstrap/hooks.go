// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"context"
	"fmt"
	"io"

	loginfeature "github.com/dalemusser/placementhub/internal/app/features/login"
	"github.com/dalemusser/placementhub/internal/app/system/prompt"
	"github.com/dalemusser/placementhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Lifecycle lists the steps Run performs, in order. Tests replace
// individual steps, typically LoadConfig.
type Lifecycle struct {
	Name           string
	LoadConfig     func(logger *zap.Logger) (*config.CoreConfig, AppConfig, error)
	ValidateConfig func(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error
	ConnectDB      func(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error)
	Startup        func(ctx context.Context, appCfg AppConfig, svc Services, logger *zap.Logger) error
	BuildHandler   func(appCfg AppConfig, svc Services, logger *zap.Logger) *loginfeature.Handler
	Shutdown       func(ctx context.Context, deps DBDeps, logger *zap.Logger) error
}

// Hooks is the production lifecycle.
var Hooks = Lifecycle{
	Name:           "placementhub",
	LoadConfig:     LoadConfig,
	ValidateConfig: ValidateConfig,
	ConnectDB:      ConnectDB,
	Startup:        Startup,
	BuildHandler:   BuildHandler,
	Shutdown:       Shutdown,
}

// Run loads config, seeds the stores and serves the menus on in/out until
// the user quits, input ends or ctx is cancelled. level is raised or
// lowered to the configured log level once config is loaded.
func Run(ctx context.Context, hooks Lifecycle, in io.Reader, out io.Writer, level zap.AtomicLevel, logger *zap.Logger) error {
	logger = logger.With(zap.String("app", hooks.Name))

	coreCfg, appCfg, err := hooks.LoadConfig(logger)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := hooks.ValidateConfig(coreCfg, appCfg, logger); err != nil {
		return err
	}
	if l, err := zapcore.ParseLevel(appCfg.LogLevel); err == nil {
		level.SetLevel(l)
	}
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeouts overridden from environment", zap.Int("count", n))
	}

	deps, err := hooks.ConnectDB(ctx, coreCfg, appCfg, logger)
	if err != nil {
		return fmt.Errorf("open stores: %w", err)
	}
	defer func() {
		if err := hooks.Shutdown(context.Background(), deps, logger); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	svc := BuildServices(appCfg, deps, logger)
	if err := hooks.Startup(ctx, appCfg, svc, logger); err != nil {
		return fmt.Errorf("startup: %w", err)
	}

	h := hooks.BuildHandler(appCfg, svc, logger)
	return h.Run(ctx, prompt.New(in, out))
}
