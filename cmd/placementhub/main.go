package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dalemusser/placementhub/internal/app/bootstrap"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	level := zap.NewAtomicLevelAt(zap.WarnLevel)
	logger, err := bootstrap.NewLogger(level)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := bootstrap.Run(ctx, bootstrap.Hooks, os.Stdin, os.Stdout, level, logger); err != nil {
		logger.Error("placementhub exited", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
