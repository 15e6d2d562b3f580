// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/placementhub/internal/domain/models"
	"go.uber.org/zap"
)

// Shutdown logs what the session left behind. Nothing is persisted.
func Shutdown(ctx context.Context, deps DBDeps, logger *zap.Logger) error {
	postings, err := deps.Postings.Count(ctx, nil)
	if err != nil {
		return err
	}
	placements, err := deps.Candidacies.Count(ctx, models.Candidacy.IsPlacement)
	if err != nil {
		return err
	}
	logger.Info("placementhub stopped",
		zap.Int64("postings", postings),
		zap.Int64("placements", placements),
	)
	return nil
}
