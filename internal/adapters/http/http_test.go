package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/movie-gateway/internal/adapters/http/dto"
	"github.com/jsamuelsen/movie-gateway/internal/adapters/http/handlers"
	"github.com/jsamuelsen/movie-gateway/internal/adapters/http/middleware"
	"github.com/jsamuelsen/movie-gateway/internal/app"
	"github.com/jsamuelsen/movie-gateway/internal/domain"
	"github.com/jsamuelsen/movie-gateway/internal/mocks"
	"github.com/jsamuelsen/movie-gateway/internal/platform/config"
	"github.com/jsamuelsen/movie-gateway/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Host:           "127.0.0.1",
		Port:           0,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    30 * time.Second,
		RequestTimeout: 5 * time.Second,
		MaxRequestSize: 1 << 20,
	}
}

func newTestRouter(t *testing.T, catalog *mocks.MockMovieCatalog, timeout time.Duration) *gin.Engine {
	t.Helper()

	logger := discardLogger()
	service := app.NewMovieService(app.MovieServiceConfig{Catalog: catalog, Logger: logger})

	engine := gin.New()
	SetupRouter(engine, RouterConfig{
		Logger:      logger,
		ServiceName: "movie-gateway",
		HealthHandler: handlers.NewHealthHandler(handlers.HealthHandlerConfig{
			Registry:  ports.NewHealthRegistry(),
			BuildInfo: handlers.NewBuildInfo("movie-gateway", "1.0.0", "abc123", "now"),
		}),
		MovieHandler: handlers.NewMovieHandler(service, app.NewExecutor(logger)),
		Timeout:      timeout,
	})

	return engine
}

func TestServerNew(t *testing.T) {
	cfg := testServerConfig()
	logger := discardLogger()

	srv := New(cfg, logger)

	require.NotNil(t, srv)
	assert.IsType(t, &gin.Engine{}, srv.Engine())
	assert.Equal(t, cfg, srv.Config())
	assert.Equal(t, "127.0.0.1:0", srv.Addr())
}

func TestServerRun(t *testing.T) {
	cfg := testServerConfig()
	cfg.ShutdownTimeout = 2 * time.Second

	srv := New(cfg, discardLogger())
	srv.Engine().GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- srv.Run(ctx) }()

	select {
	case <-srv.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("server never bound its listener")
	}

	assert.NotEqual(t, "127.0.0.1:0", srv.Addr())

	resp, err := http.Get("http://" + srv.Addr() + "/ping")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for server to drain")
	}
}

func TestServerRun_BindFailure(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = taken.Close() })

	cfg := testServerConfig()
	cfg.Port = taken.Addr().(*net.TCPAddr).Port

	err = New(cfg, discardLogger()).Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listening on")
}

func TestMaxBodySize(t *testing.T) {
	cfg := testServerConfig()
	cfg.MaxRequestSize = 10

	srv := New(cfg, discardLogger())
	srv.Engine().POST("/echo", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}

		c.Status(http.StatusOK)
	})

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "under limit", body: "small", status: http.StatusOK},
		{name: "over limit", body: strings.Repeat("x", 64), status: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(tt.body)))

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestNewRouterConfig(t *testing.T) {
	cfg := &config.Config{
		App:    config.AppConfig{Name: "movie-gateway"},
		Server: config.ServerConfig{RequestTimeout: 7 * time.Second},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"https://movies.example.com"}},
	}

	rc := NewRouterConfig(cfg, discardLogger(), nil, nil)

	assert.Equal(t, "movie-gateway", rc.ServiceName)
	assert.Equal(t, 7*time.Second, rc.Timeout)
	assert.Equal(t, cfg.CORS, rc.CORS)

	cfg.Server.RequestTimeout = 0
	assert.Equal(t, DefaultRequestTimeout, NewRouterConfig(cfg, nil, nil, nil).Timeout)
}

func TestSetupRouter_Routes(t *testing.T) {
	engine := newTestRouter(t, mocks.NewMockMovieCatalog(t), time.Second)

	routes := make(map[string]bool)
	for _, r := range engine.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /-/live",
		"GET /-/ready",
		"GET /-/build",
		"GET /-/metrics",
		"GET /api/v1/genres",
		"GET /api/v1/movies/popular",
		"GET /api/v1/movies/search",
		"GET /api/v1/movies/:id",
		"GET /api/v1/movies/",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestSetupRouter_NilHandlers(t *testing.T) {
	engine := gin.New()

	require.NotPanics(t, func() {
		SetupRouter(engine, RouterConfig{Logger: discardLogger(), ServiceName: "movie-gateway"})
	})

	assert.Empty(t, engine.Routes())
}

func TestSetupRouter_GenresEndToEnd(t *testing.T) {
	catalog := mocks.NewMockMovieCatalog(t)
	catalog.EXPECT().ListGenres(mock.Anything).Return([]domain.Genre{{ID: 28, Name: "Action"}}, nil).Once()

	engine := newTestRouter(t, catalog, time.Second)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/genres", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-1")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-1", w.Header().Get(middleware.HeaderRequestID))
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderCorrelationID))
	assert.JSONEq(t, `{"genres":[{"id":28,"name":"Action"}]}`, w.Body.String())
}

func TestSetupRouter_RequestDeadline(t *testing.T) {
	catalog := mocks.NewMockMovieCatalog(t)
	catalog.EXPECT().ListGenres(mock.Anything).RunAndReturn(func(ctx context.Context) ([]domain.Genre, error) {
		<-ctx.Done()
		return nil, domain.NewUnavailableError("", ctx.Err())
	}).Once()

	engine := newTestRouter(t, catalog, 20*time.Millisecond)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/genres", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, domain.CodeExternalAPIDown, body.Code)
}

func TestSetupRouter_PreflightSkipsHandlers(t *testing.T) {
	engine := newTestRouter(t, mocks.NewMockMovieCatalog(t), time.Second)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/movies/popular", nil)
	req.Header.Set("Origin", "https://movies.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetupRouter_Liveness(t *testing.T) {
	engine := newTestRouter(t, mocks.NewMockMovieCatalog(t), time.Second)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/live", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
