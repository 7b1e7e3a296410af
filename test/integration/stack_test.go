//go:build integration

package integration

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/movie-gateway/internal/adapters/clients/tmdb"
	httpadapter "github.com/jsamuelsen/movie-gateway/internal/adapters/http"
	"github.com/jsamuelsen/movie-gateway/internal/adapters/http/handlers"
	"github.com/jsamuelsen/movie-gateway/internal/app"
	"github.com/jsamuelsen/movie-gateway/internal/platform/config"
	"github.com/jsamuelsen/movie-gateway/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const notFoundBody = `{"status_code":34,"status_message":"The resource you requested could not be found."}`

type stubResponse struct {
	status  int
	body    string
	headers map[string]string
}

// fakeTMDB serves canned responses keyed by request path and counts calls.
type fakeTMDB struct {
	server *httptest.Server

	mu        sync.Mutex
	responses map[string]stubResponse
	lastQuery map[string]string
	requests  atomic.Int64
}

func newFakeTMDB() *fakeTMDB {
	f := &fakeTMDB{
		responses: make(map[string]stubResponse),
		lastQuery: make(map[string]string),
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))

	return f
}

func (f *fakeTMDB) serve(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)

	f.mu.Lock()
	resp, ok := f.responses[r.URL.Path]
	f.lastQuery[r.URL.Path] = r.URL.RawQuery
	f.mu.Unlock()

	if !ok {
		resp = stubResponse{status: http.StatusNotFound, body: notFoundBody}
	}

	for k, v := range resp.headers {
		w.Header().Set(k, v)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = io.WriteString(w, resp.body)
}

func (f *fakeTMDB) stub(path string, resp stubResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.responses[path] = resp
}

func (f *fakeTMDB) stubJSON(path string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	f.stub(path, stubResponse{status: http.StatusOK, body: string(body)})
}

func (f *fakeTMDB) query(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.lastQuery[path]
}

func (f *fakeTMDB) close() {
	f.server.Close()
}

type stackOptions struct {
	circuitMaxFailures int
	rateLimit          config.RateLimitConfig
	requestTimeout     time.Duration
}

func defaultStackOptions() stackOptions {
	return stackOptions{
		circuitMaxFailures: 5,
		requestTimeout:     2 * time.Second,
	}
}

func testConfig(tmdbURL string, opts stackOptions) *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "movie-gateway", Version: "test", Environment: "test"},
		Server: config.ServerConfig{
			RequestTimeout: opts.requestTimeout,
		},
		Client: config.ClientConfig{
			Timeout: time.Second,
			CircuitBreaker: config.CircuitBreakerConfig{
				MaxFailures:   opts.circuitMaxFailures,
				Timeout:       time.Minute,
				HalfOpenLimit: 1,
			},
			RateLimit: opts.rateLimit,
		},
		TMDB: config.TMDBConfig{
			BaseURL:  tmdbURL,
			APIKey:   "integration-key",
			Language: "en-US",
		},
	}
}

// newGateway assembles the service the same way main does, pointed at tmdbURL.
func newGateway(tmdbURL string, opts stackOptions) (*httptest.Server, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testConfig(tmdbURL, opts)

	httpClient, err := tmdb.NewHTTPClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	catalog := tmdb.New(tmdb.Config{
		Client:   httpClient,
		Language: cfg.TMDB.Language,
		Logger:   logger,
	})

	registry := ports.NewHealthRegistry()
	if err := registry.Register(catalog); err != nil {
		return nil, err
	}

	service := app.NewMovieService(app.MovieServiceConfig{Catalog: catalog, Logger: logger})

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.NewRouterConfig(
		cfg,
		logger,
		handlers.NewHealthHandler(handlers.HealthHandlerConfig{
			Registry:  registry,
			BuildInfo: handlers.NewBuildInfo(cfg.App.Name, "test", "none", "now"),
		}),
		handlers.NewMovieHandler(service, app.NewExecutor(logger)),
	))

	return httptest.NewServer(engine), nil
}
