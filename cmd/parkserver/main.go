// Package main provides the park server binary: it loads a scenario, runs
// the simulation loop and serves the action service to network players.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/parksim/internal/config"
	"github.com/cory-johannsen/parksim/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, cfg.Server.Name)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}

	if err := run(cfg, logger, start); err != nil {
		logger.Error("park server exited", zap.Error(err))
		_ = logger.Sync()
		fmt.Fprintf(os.Stderr, "parkserver: %v\n", err)
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(cfg config.Config, logger *zap.Logger, start time.Time) error {
	ctx := context.Background()

	logger.Info("starting park server",
		zap.String("mode", cfg.Server.Mode),
		zap.String("grpc_addr", cfg.GameServer.Addr()),
		zap.Duration("tick", cfg.Simulation.TickInterval()),
	)

	lifecycle, cleanup, err := initLifecycle(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("wiring server: %w", err)
	}
	defer cleanup()

	logger.Info("park server initialized",
		zap.Strings("services", lifecycle.Names()),
		zap.Duration("startup", time.Since(start)),
	)
	return lifecycle.Run(ctx)
}
