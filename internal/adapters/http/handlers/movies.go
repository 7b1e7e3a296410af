package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/movie-gateway/internal/adapters/http/dto"
	"github.com/jsamuelsen/movie-gateway/internal/app"
	"github.com/jsamuelsen/movie-gateway/internal/domain"
)

// MovieHandler serves the public movie catalog endpoints.
//
// Every endpoint runs the same lifecycle through app.Execute: validate the
// query, make exactly one upstream call, shape the result and respond. Any
// failure is written by dto.RespondError.
type MovieHandler struct {
	service  *app.MovieService
	executor *app.Executor
}

// NewMovieHandler creates a new movie handler.
func NewMovieHandler(service *app.MovieService, executor *app.Executor) *MovieHandler {
	if executor == nil {
		executor = app.NewExecutor(nil)
	}

	return &MovieHandler{
		service:  service,
		executor: executor,
	}
}

// none is the validated request of operations without input.
type none struct{}

// ListGenres handles GET /api/v1/genres.
//
// @Summary List movie genres
// @Tags genres
// @Produce json
// @Success 200 {object} dto.GenreListResponse
// @Failure 429,503 {object} dto.ErrorResponse
// @Router /api/v1/genres [get]
func (h *MovieHandler) ListGenres(c *gin.Context) {
	op := app.Operation[*gin.Context, none, []domain.Genre, *dto.GenreListResponse]{
		Name: "list_genres",
		Validate: func(context.Context, *gin.Context) (none, error) {
			return none{}, nil
		},
		Fetch: func(ctx context.Context, _ none) ([]domain.Genre, error) {
			return h.service.ListGenres(ctx)
		},
		Shape: func(_ context.Context, _ none, genres []domain.Genre) (*dto.GenreListResponse, error) {
			return dto.NewGenreList(genres), nil
		},
		Respond: respondJSON[*dto.GenreListResponse](c, dto.CacheGenres),
	}

	run(c, h.executor, op)
}

// GetMovie handles GET /api/v1/movies/:id.
// An upstream 404 becomes MOVIE_NOT_FOUND.
//
// @Summary Get movie details with cast
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} dto.MovieResponse
// @Failure 400,404,429,503 {object} dto.ErrorResponse
// @Router /api/v1/movies/{id} [get]
func (h *MovieHandler) GetMovie(c *gin.Context) {
	op := app.Operation[*gin.Context, int, *domain.Movie, *dto.MovieResponse]{
		Name: "get_movie",
		Validate: func(_ context.Context, in *gin.Context) (int, error) {
			return dto.ParseMovieID(in.Param("id"))
		},
		Fetch: func(ctx context.Context, id int) (*domain.Movie, error) {
			movie, err := h.service.GetMovie(ctx, id)
			if isUpstreamNotFound(err) {
				return nil, domain.NewNotFoundError("movie", strconv.Itoa(id))
			}

			return movie, err
		},
		Shape: func(_ context.Context, _ int, movie *domain.Movie) (*dto.MovieResponse, error) {
			return dto.NewMovie(movie), nil
		},
		Respond: respondJSON[*dto.MovieResponse](c, dto.CacheDetail),
	}

	run(c, h.executor, op)
}

// ListPopular handles GET /api/v1/movies/popular.
// The genre parameter is a comma-separated list; every result carries all of them.
//
// @Summary List popular movies
// @Tags movies
// @Produce json
// @Param page query int false "Page (1-1000)"
// @Param genre query string false "Comma-separated genre ids"
// @Success 200 {object} dto.PageResponse[dto.MovieResponse]
// @Failure 400,429,503 {object} dto.ErrorResponse
// @Router /api/v1/movies/popular [get]
func (h *MovieHandler) ListPopular(c *gin.Context) {
	op := app.Operation[*gin.Context, dto.PopularQuery, *domain.Page[domain.Movie], *dto.PageResponse[dto.MovieResponse]]{
		Name: "list_popular",
		Validate: func(_ context.Context, in *gin.Context) (dto.PopularQuery, error) {
			return dto.ParsePopularQuery(in)
		},
		Fetch: func(ctx context.Context, q dto.PopularQuery) (*domain.Page[domain.Movie], error) {
			return h.service.ListPopular(ctx, q.Page, q.GenreIDs)
		},
		Shape: func(_ context.Context, q dto.PopularQuery, page *domain.Page[domain.Movie]) (*dto.PageResponse[dto.MovieResponse], error) {
			return dto.NewMoviePage(page, q.Page), nil
		},
		Respond: respondJSON[*dto.PageResponse[dto.MovieResponse]](c, dto.CachePopular),
	}

	run(c, h.executor, op)
}

// SearchMovies handles GET /api/v1/movies/search.
//
// @Summary Search movies by title
// @Tags movies
// @Produce json
// @Param q query string true "Search text (1-100 characters)"
// @Param page query int false "Page (1-1000)"
// @Success 200 {object} dto.PageResponse[dto.MovieResponse]
// @Failure 400,429,503 {object} dto.ErrorResponse
// @Router /api/v1/movies/search [get]
func (h *MovieHandler) SearchMovies(c *gin.Context) {
	op := app.Operation[*gin.Context, dto.SearchQuery, *domain.Page[domain.Movie], *dto.PageResponse[dto.MovieResponse]]{
		Name: "search_movies",
		Validate: func(_ context.Context, in *gin.Context) (dto.SearchQuery, error) {
			return dto.ParseSearchParams(in)
		},
		Fetch: func(ctx context.Context, q dto.SearchQuery) (*domain.Page[domain.Movie], error) {
			return h.service.SearchMovies(ctx, q.Query, q.Page)
		},
		Shape: func(_ context.Context, q dto.SearchQuery, page *domain.Page[domain.Movie]) (*dto.PageResponse[dto.MovieResponse], error) {
			return dto.NewMoviePage(page, q.Page), nil
		},
		Respond: respondJSON[*dto.PageResponse[dto.MovieResponse]](c, dto.CacheSearch),
	}

	run(c, h.executor, op)
}

// RegisterMovieRoutes registers the catalog routes on the given group:
//   - GET /genres
//   - GET /movies/popular
//   - GET /movies/search
//   - GET /movies/:id
//   - GET /movies/ (no id, answered with MISSING_MOVIE_ID)
func (h *MovieHandler) RegisterMovieRoutes(rg *gin.RouterGroup) {
	rg.GET("/genres", h.ListGenres)

	movies := rg.Group("/movies")
	movies.GET("/popular", h.ListPopular)
	movies.GET("/search", h.SearchMovies)
	movies.GET("/:id", h.GetMovie)
	movies.GET("/", h.GetMovie)
}

// run executes op for the current request and writes any failure.
func run[R, F, O any](c *gin.Context, exec *app.Executor, op app.Operation[*gin.Context, R, F, O]) {
	if _, err := app.Execute(c.Request.Context(), exec, op, c); err != nil {
		dto.RespondError(c, err)
	}
}

// respondJSON writes a 200 with the operation's cache policy.
func respondJSON[O any](c *gin.Context, policy dto.CachePolicy) func(context.Context, O) error {
	return func(_ context.Context, body O) error {
		policy.Apply(c)
		c.JSON(http.StatusOK, body)

		return nil
	}
}

// isUpstreamNotFound reports a generic upstream failure with status 404.
func isUpstreamNotFound(err error) bool {
	upstreamErr, ok := domain.AsUpstreamError(err)
	return ok && upstreamErr.Kind == domain.KindGeneric && upstreamErr.Status == http.StatusNotFound
}
