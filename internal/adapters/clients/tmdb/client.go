package tmdb

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jsamuelsen/movie-gateway/internal/adapters/clients"
	"github.com/jsamuelsen/movie-gateway/internal/domain"
	"github.com/jsamuelsen/movie-gateway/internal/platform/config"
	"github.com/jsamuelsen/movie-gateway/internal/platform/logging"
)

// ServiceName identifies TMDB in logs, spans and health responses.
const ServiceName = "tmdb"

const (
	paramAPIKey = "api_key"

	// jwtPrefix starts every v4 read access token, which is a JWT.
	jwtPrefix = "eyJ"

	opListGenres   = "list_genres"
	opGetMovie     = "get_movie"
	opListPopular  = "list_popular"
	opSearchMovies = "search_movies"
	opCheck        = "check"
)

// Config contains configuration for the TMDB adapter.
type Config struct {
	// Client is the instrumented HTTP client. Its BaseURL must be the TMDB v3 root
	// and its AuthFunc should come from Authenticator.
	Client *clients.Client

	// Language is sent with every call (e.g. "en-US").
	Language string

	// IncludeAdult is sent with every call.
	IncludeAdult bool

	// Logger is the structured logger.
	Logger *slog.Logger
}

// Client implements ports.MovieCatalog and ports.HealthChecker against TMDB.
type Client struct {
	client       *clients.Client
	language     string
	includeAdult bool
	logger       *slog.Logger
}

// New creates a TMDB adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func New(cfg Config) *Client {
	if cfg.Client == nil {
		panic("tmdb: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		client:       cfg.Client,
		language:     cfg.Language,
		includeAdult: cfg.IncludeAdult,
		logger:       logger.With(slog.String("component", "tmdb.Client")),
	}
}

// NewHTTPClient builds the instrumented HTTP client for TMDB from application config.
func NewHTTPClient(cfg *config.Config, logger *slog.Logger) (*clients.Client, error) {
	client, err := clients.New(&clients.Config{
		BaseURL:         cfg.TMDB.BaseURL,
		ServiceName:     ServiceName,
		Timeout:         cfg.Client.Timeout,
		Circuit:         cfg.Client.CircuitBreaker,
		Transport:       cfg.Client.Transport,
		RateLimit:       cfg.Client.RateLimit,
		AuthFunc:        Authenticator(cfg.TMDB.APIKey),
		SensitiveParams: []string{paramAPIKey},
		Logger:          logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating tmdb http client: %w", err)
	}

	return client, nil
}

// Authenticator returns a request hook that authenticates with key.
// v4 read access tokens are sent as a bearer token; anything else is treated
// as a v3 key and appended as the api_key query parameter.
func Authenticator(key string) func(*http.Request) {
	key = strings.TrimSpace(key)

	if strings.HasPrefix(key, jwtPrefix) {
		return func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+key)
		}
	}

	return func(r *http.Request) {
		q := r.URL.Query()
		q.Set(paramAPIKey, key)
		r.URL.RawQuery = q.Encode()
	}
}

// ListGenres implements ports.MovieCatalog.
func (c *Client) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	list, err := fetch[genreListDTO](ctx, c, opListGenres, "/genre/movie/list", nil)
	if err != nil {
		return nil, err
	}

	return translateGenres(list.Genres), nil
}

// GetMovie implements ports.MovieCatalog. Cast is ordered by billing order.
func (c *Client) GetMovie(ctx context.Context, id int) (*domain.Movie, error) {
	path := "/movie/" + strconv.Itoa(id)
	query := url.Values{"append_to_response": {"credits"}}

	payload, err := fetch[movieDTO](ctx, c, opGetMovie, path, query)
	if err != nil {
		return nil, err
	}

	movie, err := translateMovie(payload)
	if err != nil {
		c.logger.WarnContext(ctx, "discarding invalid movie payload",
			slog.Int("movie_id", id), slog.Any("error", err))

		return nil, invalidResponse(err)
	}

	return movie, nil
}

// ListPopular implements ports.MovieCatalog.
//
// Without genres it reads /movie/popular. With genres it reads /discover/movie
// sorted by popularity, where comma-joined ids mean AND, and then drops any
// result that does not carry every requested id.
func (c *Client) ListPopular(ctx context.Context, page int, genreIDs []int) (*domain.Page[domain.Movie], error) {
	query := url.Values{"page": {strconv.Itoa(page)}}
	path := "/movie/popular"

	if len(genreIDs) > 0 {
		path = "/discover/movie"
		query.Set("sort_by", "popularity.desc")
		query.Set("with_genres", joinIDs(genreIDs))
	}

	payload, err := fetch[pageDTO](ctx, c, opListPopular, path, query)
	if err != nil {
		return nil, err
	}

	result := translatePage(payload)
	if len(genreIDs) > 0 {
		result.Results = filterByGenres(result.Results, genreIDs)
	}

	return finishPage(result, page), nil
}

// SearchMovies implements ports.MovieCatalog.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*domain.Page[domain.Movie], error) {
	params := url.Values{
		"query": {query},
		"page":  {strconv.Itoa(page)},
	}

	payload, err := fetch[pageDTO](ctx, c, opSearchMovies, "/search/movie", params)
	if err != nil {
		return nil, err
	}

	return finishPage(translatePage(payload), page), nil
}

// Name implements ports.HealthChecker.
func (c *Client) Name() string {
	return ServiceName
}

// Check implements ports.HealthChecker by reading the TMDB configuration endpoint.
func (c *Client) Check(ctx context.Context) error {
	resp, err := c.client.Get(ctx, "/configuration?"+c.baseQuery().Encode())
	if resp != nil {
		defer func() { _ = resp.Body.Close() }()
	}

	err = Classify(resp, err)
	observe(opCheck, err)

	return err
}

// fetch performs one GET, classifies any failure and decodes a 2xx body into T.
func fetch[T any](ctx context.Context, c *Client, operation, path string, query url.Values) (result *T, err error) {
	defer func() { observe(operation, err) }()

	params := c.baseQuery()
	for k, v := range query {
		params[k] = v
	}

	logger := logging.FromContext(ctx)
	logger.Log(ctx, logging.LevelTrace, "calling tmdb",
		slog.String("operation", operation),
		slog.String("path", path),
	)

	resp, err := c.client.Get(ctx, path+"?"+params.Encode())
	if resp != nil {
		defer func() { _ = resp.Body.Close() }()
	}

	if err = Classify(resp, err); err != nil {
		logger.DebugContext(ctx, "tmdb call failed",
			slog.String("operation", operation),
			slog.Any("error", err),
		)

		return nil, err
	}

	return decode[T](resp.Body)
}

func (c *Client) baseQuery() url.Values {
	q := url.Values{}
	if c.language != "" {
		q.Set("language", c.language)
	}

	q.Set("include_adult", strconv.FormatBool(c.includeAdult))

	return q
}

func filterByGenres(movies []domain.Movie, genreIDs []int) []domain.Movie {
	kept := movies[:0]
	for i := range movies {
		if movies[i].HasGenres(genreIDs) {
			kept = append(kept, movies[i])
		}
	}

	return kept
}

// finishPage caps the result count and fills the page number when TMDB omits it.
func finishPage(p *domain.Page[domain.Movie], requested int) *domain.Page[domain.Movie] {
	if len(p.Results) > domain.MaxPageSize {
		p.Results = p.Results[:domain.MaxPageSize]
	}

	if p.Page <= 0 {
		p.Page = requested
	}

	return p
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}

	return strings.Join(parts, ",")
}
