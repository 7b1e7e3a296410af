// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never provider DTOs or infrastructure types
//   - Failures are classified once by the adapter as *domain.UpstreamError
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/jsamuelsen/movie-gateway/internal/domain"
)

// MovieCatalog is the read-only movie metadata provider.
//
// Every method performs at most one upstream call and never retries. Failures
// are returned as *domain.UpstreamError with the kind already assigned.
type MovieCatalog interface {
	// ListGenres returns the provider's movie genres in provider order.
	ListGenres(ctx context.Context) ([]domain.Genre, error)

	// GetMovie returns a movie with genres, runtime and cast.
	// An unknown id yields a generic upstream error with status 404.
	GetMovie(ctx context.Context, id int) (*domain.Movie, error)

	// ListPopular returns a page of popular movies. When genreIDs is non-empty
	// every returned movie carries all of them.
	ListPopular(ctx context.Context, page int, genreIDs []int) (*domain.Page[domain.Movie], error)

	// SearchMovies returns a page of movies matching the query text.
	SearchMovies(ctx context.Context, query string, page int) (*domain.Page[domain.Movie], error)
}
