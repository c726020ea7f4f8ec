// Package main replays a recorded action journal onto its scenario and
// reports the resulting park state.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/parksim/internal/config"
	"github.com/cory-johannsen/parksim/internal/game/action"
	"github.com/cory-johannsen/parksim/internal/game/park"
	"github.com/cory-johannsen/parksim/internal/journal"
	"github.com/cory-johannsen/parksim/internal/observability"
	"github.com/cory-johannsen/parksim/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	journalPath := flag.String("journal", "", "compressed journal file; empty reads the database mirror")
	scenario := flag.String("scenario", "", "scenario file name under content_dir/scenarios; defaults to the configured scenario")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *scenario != "" {
		cfg.Simulation.Scenario = *scenario
	}

	logger, err := observability.NewLogger(cfg.Logging, "replay")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), cfg, *journalPath, os.Stdout, logger); err != nil {
		logger.Fatal("replay failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, journalPath string, out io.Writer, logger *zap.Logger) error {
	start := time.Now()

	entries, err := loadEntries(ctx, cfg, journalPath)
	if err != nil {
		return err
	}
	w, err := loadWorld(cfg)
	if err != nil {
		return err
	}

	before := w.Finances.Cash
	stats, err := journal.Replay(w, action.DefaultRegistry(), entries, logger)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "replayed %d actions to tick %d [%s]\ncash: %s -> %s\npark value: %s\nrides: %d\n",
		stats.Applied, stats.Tick, time.Since(start),
		before, w.Finances.Cash, w.CalculateParkValue(), w.Rides.Count())
	return err
}

func loadEntries(ctx context.Context, cfg config.Config, journalPath string) ([]journal.Entry, error) {
	if journalPath != "" {
		return journal.ReadFile(journalPath)
	}
	if !cfg.Database.Enabled {
		return nil, errors.New("no -journal given and the database mirror is disabled")
	}
	pool, err := postgres.NewPool(ctx, cfg.Database, "parksim-replay")
	if err != nil {
		return nil, err
	}
	defer pool.Close()
	return postgres.NewJournalRepository(pool.DB(), cfg.GameServer.SubmitTimeout).ListFrom(ctx, 0)
}

func loadWorld(cfg config.Config) (*park.World, error) {
	catalog, err := park.LoadCatalogFromFile(filepath.Join(cfg.Simulation.ContentDir, "ride_types.yaml"))
	if errors.Is(err, os.ErrNotExist) {
		catalog = park.DefaultCatalog()
	} else if err != nil {
		return nil, err
	}
	w, err := park.LoadScenarioFromFile(filepath.Join(cfg.Simulation.ContentDir, "scenarios", cfg.Simulation.Scenario), catalog)
	if err != nil {
		return nil, err
	}
	w.Sandbox = w.Sandbox || cfg.Simulation.Sandbox
	return w, nil
}
