// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/movie-gateway/internal/domain"
	"github.com/jsamuelsen/movie-gateway/internal/ports"
)

// MovieService orchestrates movie catalog use cases.
// It depends on the MovieCatalog port, not a concrete provider client.
type MovieService struct {
	catalog ports.MovieCatalog
	logger  *slog.Logger
}

// MovieServiceConfig contains configuration for the movie service.
type MovieServiceConfig struct {
	Catalog ports.MovieCatalog
	Logger  *slog.Logger
}

// NewMovieService creates a new movie service with the provided dependencies.
// It panics if no catalog is supplied.
func NewMovieService(cfg MovieServiceConfig) *MovieService {
	if cfg.Catalog == nil {
		panic("app: MovieService requires a catalog")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &MovieService{
		catalog: cfg.Catalog,
		logger:  logger,
	}
}

// ListGenres returns the genre reference list.
func (s *MovieService) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	genres, err := s.catalog.ListGenres(ctx)
	if err != nil {
		s.logFailure(ctx, "list genres", err)
		return nil, err
	}

	s.logger.DebugContext(ctx, "listed genres", slog.Int("count", len(genres)))

	return genres, nil
}

// GetMovie returns a single movie with credits.
func (s *MovieService) GetMovie(ctx context.Context, id int) (*domain.Movie, error) {
	movie, err := s.catalog.GetMovie(ctx, id)
	if err != nil {
		s.logFailure(ctx, "get movie", err, slog.Int("movie_id", id))
		return nil, err
	}

	s.logger.DebugContext(ctx, "fetched movie",
		slog.Int("movie_id", movie.ID),
		slog.Int("cast_count", len(movie.Cast)),
	)

	return movie, nil
}

// ListPopular returns a page of popular movies, optionally restricted to movies
// carrying every one of genreIDs.
func (s *MovieService) ListPopular(ctx context.Context, page int, genreIDs []int) (*domain.Page[domain.Movie], error) {
	result, err := s.catalog.ListPopular(ctx, page, genreIDs)
	if err != nil {
		s.logFailure(ctx, "list popular", err,
			slog.Int("page", page),
			slog.Any("genre_ids", genreIDs),
		)

		return nil, err
	}

	s.logger.DebugContext(ctx, "listed popular movies",
		slog.Int("page", page),
		slog.Int("count", len(result.Results)),
		slog.Int("total_results", result.TotalResults),
	)

	return result, nil
}

// SearchMovies returns a page of movies matching query.
func (s *MovieService) SearchMovies(ctx context.Context, query string, page int) (*domain.Page[domain.Movie], error) {
	result, err := s.catalog.SearchMovies(ctx, query, page)
	if err != nil {
		s.logFailure(ctx, "search movies", err, slog.Int("page", page))
		return nil, err
	}

	s.logger.DebugContext(ctx, "searched movies",
		slog.Int("page", page),
		slog.Int("count", len(result.Results)),
	)

	return result, nil
}

// logFailure logs an upstream failure at a level matching its kind.
// Rate limiting and generic provider errors are expected and logged as warnings.
func (s *MovieService) logFailure(ctx context.Context, op string, err error, attrs ...slog.Attr) {
	upstreamErr, ok := domain.AsUpstreamError(err)
	if !ok {
		s.logger.LogAttrs(ctx, slog.LevelError, op+" failed", append(attrs, slog.Any("error", err))...)
		return
	}

	attrs = append(attrs,
		slog.String("kind", upstreamErr.Kind.String()),
		slog.Int("status", upstreamErr.Status),
		slog.Any("error", err),
	)

	level := slog.LevelWarn

	switch upstreamErr.Kind {
	case domain.KindServiceUnavailable:
		level = slog.LevelError
	case domain.KindRateLimited:
		attrs = append(attrs, slog.Int("retry_after", upstreamErr.RetryAfterSeconds))
	case domain.KindGeneric:
	}

	s.logger.LogAttrs(ctx, level, op+" failed", attrs...)
}
