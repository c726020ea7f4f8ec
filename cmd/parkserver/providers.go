package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/cory-johannsen/parksim/internal/config"
	"github.com/cory-johannsen/parksim/internal/game/action"
	"github.com/cory-johannsen/parksim/internal/game/notify"
	"github.com/cory-johannsen/parksim/internal/game/park"
	"github.com/cory-johannsen/parksim/internal/journal"
	"github.com/cory-johannsen/parksim/internal/observability"
	"github.com/cory-johannsen/parksim/internal/replication"
	"github.com/cory-johannsen/parksim/internal/scripting"
	"github.com/cory-johannsen/parksim/internal/server"
	"github.com/cory-johannsen/parksim/internal/sim"
	"github.com/cory-johannsen/parksim/internal/storage/postgres"
)

// scriptScope is the scope the park's action hook is dispatched under.
// Scripts are loaded into the global VM, which serves every scope.
const scriptScope = "park"

var serverSet = wire.NewSet(
	provideCatalog,
	provideWorld,
	action.DefaultRegistry,
	provideSink,
	provideScripts,
	provideHook,
	providePool,
	provideJournal,
	observability.NewRegistry,
	provideMetrics,
	provideExecutor,
	provideLoop,
	provideGRPCServer,
	provideMetricsServer,
	provideLifecycle,
)

func provideCatalog(cfg config.Config, logger *zap.Logger) (*park.Catalog, error) {
	path := filepath.Join(cfg.Simulation.ContentDir, "ride_types.yaml")
	catalog, err := park.LoadCatalogFromFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("no catalog file, using built-in ride types", zap.String("path", path))
		return park.DefaultCatalog(), nil
	}
	if err != nil {
		return nil, err
	}
	logger.Info("catalog loaded",
		zap.String("path", path),
		zap.Int("ride_types", catalog.RideTypeCount()),
		zap.Int("banners", catalog.BannerCount()),
	)
	return catalog, nil
}

func provideWorld(cfg config.Config, catalog *park.Catalog, logger *zap.Logger) (*park.World, error) {
	start := time.Now()
	path := filepath.Join(cfg.Simulation.ContentDir, "scenarios", cfg.Simulation.Scenario)
	w, err := park.LoadScenarioFromFile(path, catalog)
	if err != nil {
		return nil, err
	}
	if cfg.Simulation.Sandbox {
		w.Sandbox = true
	}
	logger.Info("scenario loaded",
		zap.String("path", path),
		zap.Int("rides", w.Rides.Count()),
		zap.Int("guests", len(w.Guests)),
		zap.Int64("cash", int64(w.Finances.Cash)),
		zap.Int64("park_value", int64(w.ParkValue)),
		zap.Bool("sandbox", w.Sandbox),
		zap.Duration("elapsed", time.Since(start)),
	)
	return w, nil
}

func provideSink(logger *zap.Logger) notify.Sink {
	return notify.NewLogSink(logger.Named("ui"))
}

// provideScripts returns a nil manager when scripting is disabled.
func provideScripts(cfg config.Config, w *park.World, logger *zap.Logger) (*scripting.Manager, func(), error) {
	if cfg.Scripting.Dir == "" {
		logger.Info("scripting disabled")
		return nil, func() {}, nil
	}
	start := time.Now()
	mgr := scripting.NewManager(logger.Named("lua"))
	mgr.BindWorld(w)
	if err := mgr.LoadGlobal(cfg.Scripting.Dir, cfg.Scripting.InstructionLimit); err != nil {
		mgr.Close()
		return nil, nil, err
	}
	logger.Info("park scripts loaded",
		zap.String("dir", cfg.Scripting.Dir),
		zap.Bool("action_hook", mgr.HasHook(scriptScope, scripting.ActionQueryHook)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return mgr, mgr.Close, nil
}

func provideHook(mgr *scripting.Manager) action.QueryHook {
	if mgr == nil {
		return nil
	}
	return mgr.ActionHook(scriptScope)
}

// providePool returns a nil pool when the database mirror is disabled.
func providePool(ctx context.Context, cfg config.Config, logger *zap.Logger) (*postgres.Pool, func(), error) {
	if !cfg.Database.Enabled {
		return nil, func() {}, nil
	}
	start := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database, cfg.Server.Name)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Duration("elapsed", time.Since(start)),
	)
	return pool, pool.Close, nil
}

// journalFileName names a new session journal after the scenario and the
// session start time.
func journalFileName(scenario string, at time.Time) string {
	base := strings.TrimSuffix(filepath.Base(scenario), filepath.Ext(scenario))
	return fmt.Sprintf("%s-%s%s", base, at.UTC().Format("20060102T150405Z"), journal.FileExt)
}

// provideJournal returns a nil writer when neither the file journal nor the
// database mirror is enabled. The writer runs as the "journal" service.
func provideJournal(cfg config.Config, pool *postgres.Pool, logger *zap.Logger) (*journal.Async, func(), error) {
	var tee journal.Tee
	var closers []func()

	if dir := cfg.Simulation.JournalDir; dir != "" {
		fw, err := journal.OpenFileWriter(filepath.Join(dir, journalFileName(cfg.Simulation.Scenario, time.Now())))
		if err != nil {
			return nil, nil, err
		}
		logger.Info("journal file opened", zap.String("path", fw.Path()))
		tee = append(tee, fw)
		closers = append(closers, func() {
			if err := fw.Close(); err != nil {
				logger.Error("closing journal file", zap.String("path", fw.Path()), zap.Error(err))
			}
		})
	}
	if pool != nil {
		tee = append(tee, postgres.NewJournalRepository(pool.DB(), cfg.GameServer.SubmitTimeout))
		logger.Info("journal mirrored to database")
	}

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	if len(tee) == 0 {
		logger.Warn("action journal disabled")
		return nil, cleanup, nil
	}
	return journal.NewAsync(tee, cfg.Simulation.JournalBacklog, logger.Named("journal")), cleanup, nil
}

func provideMetrics(reg *prometheus.Registry) *observability.ActionMetrics {
	return observability.RegisterMetrics(reg)
}

func provideExecutor(
	w *park.World,
	sink notify.Sink,
	hook action.QueryHook,
	j *journal.Async,
	metrics *observability.ActionMetrics,
	logger *zap.Logger,
) *action.Executor {
	exec := action.NewExecutor(w, sink, logger.Named("action"))
	exec.SetMetrics(metrics)
	if hook != nil {
		exec.SetQueryHook(hook)
	}
	if j != nil {
		exec.SetJournal(j)
	}
	return exec
}

func provideLoop(cfg config.Config, exec *action.Executor, metrics *observability.ActionMetrics, logger *zap.Logger) *sim.Loop {
	loop := sim.NewLoop(exec, cfg.Simulation.TickInterval(), logger.Named("sim"))
	loop.OnTick(metrics.ObserveTick)
	return loop
}

func provideGRPCServer(cfg config.Config, registry *action.Registry, loop *sim.Loop, logger *zap.Logger) *grpc.Server {
	srv := grpc.NewServer()
	replication.RegisterActionServiceServer(srv,
		replication.NewServer(registry, loop, cfg.GameServer.SubmitTimeout, logger.Named("replication")))
	return srv
}

// provideMetricsServer returns nil when no metrics address is configured.
func provideMetricsServer(cfg config.Config, reg *prometheus.Registry, logger *zap.Logger) *observability.MetricsServer {
	if cfg.Server.MetricsAddr == "" {
		return nil
	}
	return observability.NewMetricsServer(cfg.Server.MetricsAddr, reg, logger.Named("metrics"))
}

func provideLifecycle(
	cfg config.Config,
	j *journal.Async,
	loop *sim.Loop,
	grpcServer *grpc.Server,
	metricsServer *observability.MetricsServer,
	logger *zap.Logger,
) *server.Lifecycle {
	lc := server.NewLifecycle(logger)
	// Added before the simulation so that it stops after it and drains
	// every entry the last tick recorded.
	if j != nil {
		lc.Add("journal", &server.Background{RunFn: j.Start, WaitFn: j.Wait})
	}
	lc.Add("simulation", &server.Background{RunFn: loop.Start, WaitFn: loop.Wait})
	if cfg.Server.Mode == "host" {
		addr := cfg.GameServer.Addr()
		lc.Add("grpc", &server.FuncService{
			StartFn: func() error {
				lis, err := net.Listen("tcp", addr)
				if err != nil {
					return fmt.Errorf("listening on %s: %w", addr, err)
				}
				logger.Info("action service listening", zap.String("addr", lis.Addr().String()))
				return grpcServer.Serve(lis)
			},
			StopFn: grpcServer.GracefulStop,
		})
	}
	if metricsServer != nil {
		lc.Add("metrics", metricsServer)
	}
	return lc
}

