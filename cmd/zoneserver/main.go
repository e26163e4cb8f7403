package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/zonesrv/internal/config"
	"github.com/udisondev/zonesrv/internal/data"
	"github.com/udisondev/zonesrv/internal/db"
	"github.com/udisondev/zonesrv/internal/world"
	"github.com/udisondev/zonesrv/internal/zone"
)

const ConfigPath = "config/zoneserver.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("ZONESRV_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadZoneServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	slog.Info("zone server starting",
		"log_level", cfg.LogLevel,
		"see_distance", cfg.World.SeeDistance,
		"instant_spawn", cfg.Npcs.InstantSpawn)

	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()
	slog.Info("database connected")

	if err := db.RunMigrations(ctx, database.Pool()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	npcs, err := data.LoadNpcTable(ctx, db.NewNpcRepository(database.Pool()))
	if err != nil {
		return err
	}

	var templates zone.TemplateRepository = db.NewZoneRepository(database.Pool())
	if cfg.World.ZonesDir != "" {
		templates = data.NewYAMLZoneRepo(cfg.World.ZonesDir)
		slog.Info("loading zones from files", "dir", cfg.World.ZonesDir)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	manager := zone.NewManager(zone.Config{
		Visibility:   world.NewVisibility(cfg.World.SeeDistance),
		CallTimeout:  cfg.World.CallTimeout,
		Fanout:       cfg.World.BroadcastFanout,
		RespawnTick:  cfg.Npcs.RespawnTick,
		InstantSpawn: cfg.Npcs.InstantSpawn,
		Npcs:         npcs,
		Metrics:      zone.NewMetrics(registry),
	})
	if err := manager.LoadZones(ctx, templates); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return manager.Run(gctx)
	})

	if cfg.Metrics.Listen != "" {
		srv := &http.Server{
			Addr:              cfg.Metrics.Listen,
			Handler:           metricsMux(registry),
			ReadHeaderTimeout: 5 * time.Second,
		}

		g.Go(func() error {
			slog.Info("metrics listening", "addr", cfg.Metrics.Listen)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("zone server stopped")
	return nil
}

func metricsMux(registry *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return mux
}
