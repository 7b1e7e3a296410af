package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/movie-gateway/internal/adapters/http/handlers"
	"github.com/jsamuelsen/movie-gateway/internal/adapters/http/middleware"
	"github.com/jsamuelsen/movie-gateway/internal/platform/config"
	"github.com/jsamuelsen/movie-gateway/internal/platform/telemetry"
)

// DefaultRequestTimeout is the deadline for API requests when none is configured.
const DefaultRequestTimeout = 15 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// ServiceName names the service in spans and metrics.
	ServiceName string

	// CORS controls cross-origin access to the API.
	CORS config.CORSConfig

	// HealthHandler serves the /-/ endpoints. Optional.
	HealthHandler *handlers.HealthHandler

	// MovieHandler serves the /api/v1 movie endpoints. Optional.
	MovieHandler *handlers.MovieHandler

	// Timeout is the deadline applied to each API request.
	Timeout time.Duration
}

// NewRouterConfig builds a RouterConfig from the loaded configuration.
func NewRouterConfig(
	cfg *config.Config,
	logger *slog.Logger,
	healthHandler *handlers.HealthHandler,
	movieHandler *handlers.MovieHandler,
) RouterConfig {
	timeout := cfg.Server.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return RouterConfig{
		Logger:        logger,
		ServiceName:   cfg.App.Name,
		CORS:          cfg.CORS,
		HealthHandler: healthHandler,
		MovieHandler:  movieHandler,
		Timeout:       timeout,
	}
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery
//  2. Request ID and correlation ID
//  3. Tracing and HTTP metrics
//  4. Logging (skips /-/)
//  5. CORS, which answers preflight requests itself
//  6. Timeout, on /api/v1 only
//
// Route groups:
//   - /-/ liveness, readiness, build info and metrics
//   - /api/v1 genres and movies
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(cfg.ServiceName),
		middleware.Logging(cfg.Logger),
		middleware.CORS(cfg.CORS),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutes(engine.Group("/-"))
	}

	apiV1 := engine.Group("/api/v1")
	apiV1.Use(middleware.Timeout(cfg.Timeout))

	if cfg.MovieHandler != nil {
		cfg.MovieHandler.RegisterMovieRoutes(apiV1)
	}
}
