// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/dalemusser/placementhub/internal/app/services/accounts"
	"github.com/dalemusser/placementhub/internal/app/system/csvutil"
	"github.com/dalemusser/placementhub/internal/app/system/timeouts"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Startup loads the seed files after the stores exist and before the
// menus start. The three files are parsed concurrently; accounts are then
// created in a fixed order (staff, company representatives, students) so a
// login id claimed by two files always resolves the same way.
//
// A missing file is skipped with a warning. Invalid rows are logged and
// skipped. A file that cannot be read or exceeds the size or row limits
// aborts startup.
func Startup(ctx context.Context, appCfg AppConfig, svc Services, logger *zap.Logger) error {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Batch(), logger, "load seed files")
	defer cancel()

	var (
		students csvutil.Result[csvutil.StudentRow]
		staff    csvutil.Result[csvutil.StaffRow]
		reps     csvutil.Result[csvutil.RepRow]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		students, err = readSeed(gctx, appCfg.StudentsCSV, csvutil.ParseStudents, logger)
		return err
	})
	g.Go(func() (err error) {
		staff, err = readSeed(gctx, appCfg.StaffCSV, csvutil.ParseStaff, logger)
		return err
	})
	g.Go(func() (err error) {
		reps, err = readSeed(gctx, appCfg.RepsCSV, csvutil.ParseReps, logger)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	res, err := svc.Accounts.SeedStaff(ctx, staff.Rows)
	if err != nil {
		return fmt.Errorf("seed %s: %w", appCfg.StaffCSV, err)
	}
	seeded(ctx, svc, logger, appCfg.StaffCSV, res, staff.Errors)

	res, err = svc.Accounts.SeedReps(ctx, reps.Rows)
	if err != nil {
		return fmt.Errorf("seed %s: %w", appCfg.RepsCSV, err)
	}
	seeded(ctx, svc, logger, appCfg.RepsCSV, res, reps.Errors)

	res, err = svc.Accounts.SeedStudents(ctx, students.Rows)
	if err != nil {
		return fmt.Errorf("seed %s: %w", appCfg.StudentsCSV, err)
	}
	seeded(ctx, svc, logger, appCfg.StudentsCSV, res, students.Errors)
	return nil
}

// readSeed opens and parses one seed file. A blank path or a missing file
// yields an empty result.
func readSeed[T any](ctx context.Context, path string, parse func(io.Reader, csvutil.ParseOptions) (csvutil.Result[T], error), logger *zap.Logger) (csvutil.Result[T], error) {
	var empty csvutil.Result[T]
	if path == "" {
		return empty, nil
	}
	if err := ctx.Err(); err != nil {
		return empty, err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("seed file not found, skipping", zap.String("file", path))
		return empty, nil
	}
	if err != nil {
		return empty, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return empty, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > csvutil.MaxFileSize {
		return empty, fmt.Errorf("%s is %d bytes, limit is %d", path, info.Size(), csvutil.MaxFileSize)
	}

	res, err := parse(f, csvutil.DefaultParseOptions())
	if err != nil {
		return empty, fmt.Errorf("parse %s: %w", path, err)
	}
	return res, nil
}

func seeded(ctx context.Context, svc Services, logger *zap.Logger, path string, res accounts.SeedResult, rowErrs []csvutil.RowError) {
	if path == "" {
		return
	}
	logger.Info("accounts seeded",
		zap.String("file", path),
		zap.Int("created", res.Created),
		zap.Int("skipped", len(res.Skipped)),
		zap.Int("row_errors", len(rowErrs)),
	)
	if len(res.Skipped) > 0 {
		logger.Warn("seed rows skipped, login id already exists",
			zap.String("file", path),
			zap.Strings("login_ids", res.Skipped),
		)
	}
	if len(rowErrs) > 0 {
		logger.Warn("seed file has invalid rows",
			zap.String("file", path),
			zap.String("errors", csvutil.FormatRowErrors(rowErrs, 5)),
		)
	}
	svc.AuditLog.AccountsSeeded(ctx, path, res.Created, len(res.Skipped), len(rowErrs))
}
