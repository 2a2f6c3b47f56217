// Package main runs octoped controllers headless and writes a YAML report.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/octoped/internal/config"
	"github.com/Faultbox/octoped/internal/logger"
	"github.com/Faultbox/octoped/internal/sim"
)

func main() {
	os.Exit(run())
}

func run() int {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := sim.New(cfg, logger.Named("sim")).Run(ctx)
	if report == nil {
		logger.Error("simulation failed", zap.Error(err))
		return 1
	}

	if cfg.Sim.Report != "" {
		if werr := report.SaveTo(cfg.Sim.Report); werr != nil {
			logger.Error("failed to write report", zap.Error(werr))
			return 1
		}
		logger.Info("report written", zap.String("path", cfg.Sim.Report))
	} else if werr := report.Write(os.Stdout); werr != nil {
		logger.Error("failed to write report", zap.Error(werr))
		return 1
	}

	if errors.Is(err, sim.ErrInvariant) {
		for _, e := range multierr.Errors(err) {
			logger.Warn("instance failed", zap.Error(e))
		}
		return 2
	}
	return 0
}
