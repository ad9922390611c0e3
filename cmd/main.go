// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
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

	"github.com/Shivanand-hulikatti/activity-roster/internal/config"
	"github.com/Shivanand-hulikatti/activity-roster/internal/database"
	"github.com/Shivanand-hulikatti/activity-roster/internal/handler"
	"github.com/Shivanand-hulikatti/activity-roster/internal/logger"
	"github.com/Shivanand-hulikatti/activity-roster/internal/metrics"
	"github.com/Shivanand-hulikatti/activity-roster/internal/repository"
	"github.com/Shivanand-hulikatti/activity-roster/internal/service"
	"github.com/Shivanand-hulikatti/activity-roster/internal/web"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 1. Configuration and logging ──────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := logger.New(cfg.Log)

	// ── 2. Open the store ─────────────────────────────────────────────────
	activities, closeStore, err := openStore(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer closeStore()

	// ── 3. Wire up layers ─────────────────────────────────────────────────
	rec := metrics.New()
	activitySvc := service.NewActivityService(activities)
	activityHandler := handler.NewActivityHandler(activitySvc, rec, log)
	pageHandler := web.NewPageHandler(activitySvc, log)

	// ── 4. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(handler.Logger(log))
	r.Use(handler.CORS(cfg.Server.CORSOrigin))

	r.Get("/health", handler.HealthCheck)
	r.Handle("/metrics", rec.Handler())

	activityHandler.Routes(r)

	r.Get("/", pageHandler.Index)
	r.Handle("/static/*", web.Static(cfg.Web.StaticDir))

	// ── 5. Serve until signalled, then shut down gracefully ───────────────
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", slog.String("addr", srv.Addr), slog.String("store", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		log.Info("server stopped")
		return nil
	})

	return g.Wait()
}

// openStore returns the configured activity store and a func releasing it.
func openStore(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (repository.ActivityRepository, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg, log)
		if err != nil {
			return nil, nil, fmt.Errorf("database: %w", err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("database: %w", err)
		}
		log.Info("connected to postgres", slog.String("host", cfg.Host), slog.String("db", cfg.Name))
		return repository.NewPostgresRepository(pool), pool.Close, nil
	default:
		log.Info("using in-memory store")
		return repository.NewMemoryRepository(repository.Seed()), func() {}, nil
	}
}
