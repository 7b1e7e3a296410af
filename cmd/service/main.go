// Package main is the entry point for the movie gateway, a read-only HTTP API
// in front of The Movie Database (TMDB).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jsamuelsen/movie-gateway/internal/adapters/clients/tmdb"
	"github.com/jsamuelsen/movie-gateway/internal/adapters/http"
	"github.com/jsamuelsen/movie-gateway/internal/adapters/http/handlers"
	"github.com/jsamuelsen/movie-gateway/internal/app"
	"github.com/jsamuelsen/movie-gateway/internal/platform/config"
	"github.com/jsamuelsen/movie-gateway/internal/platform/logging"
	"github.com/jsamuelsen/movie-gateway/internal/platform/telemetry"
	"github.com/jsamuelsen/movie-gateway/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast, including a missing TMDB key)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("tmdb_base_url", cfg.TMDB.BaseURL),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Create the paced, circuit-protected HTTP client for TMDB
	httpClient, err := tmdb.NewHTTPClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating TMDB HTTP client: %w", err)
	}

	// 6. Create the TMDB catalog adapter
	catalog := tmdb.New(tmdb.Config{
		Client:       httpClient,
		Language:     cfg.TMDB.Language,
		IncludeAdult: cfg.TMDB.IncludeAdult,
		Logger:       logger,
	})

	// 7. Readiness reflects TMDB reachability
	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(catalog); err != nil {
		return fmt.Errorf("registering tmdb health check: %w", err)
	}

	// 8. Application layer
	movieService := app.NewMovieService(app.MovieServiceConfig{
		Catalog: catalog,
		Logger:  logger,
	})

	// 9. Handlers
	healthHandler := handlers.NewHealthHandler(handlers.HealthHandlerConfig{
		Registry:  healthRegistry,
		BuildInfo: handlers.NewBuildInfo(cfg.App.Name, Version, Commit, BuildTime),
	})
	movieHandler := handlers.NewMovieHandler(movieService, app.NewExecutor(logger))

	// 10. HTTP server, middleware and routes
	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.NewRouterConfig(cfg, logger, healthHandler, movieHandler))

	// 11. Serve until SIGINT or SIGTERM, then drain
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
