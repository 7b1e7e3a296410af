package dto

import "github.com/jsamuelsen/movie-gateway/internal/domain"

// GenreResponse is a genre in the public schema.
type GenreResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreListResponse is the genre listing envelope.
type GenreListResponse struct {
	Genres []GenreResponse `json:"genres"`
}

// CastMemberResponse is a credited performer in the public schema.
type CastMemberResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	Order       int     `json:"order"`
	ProfilePath *string `json:"profilePath"`
}

// MovieResponse is a movie in the public schema. Listing items carry genreIds;
// detail responses carry genres, runtime and cast.
type MovieResponse struct {
	ID           int                  `json:"id"`
	Title        string               `json:"title"`
	Overview     string               `json:"overview"`
	ReleaseDate  string               `json:"releaseDate"`
	VoteAverage  float64              `json:"voteAverage"`
	VoteCount    int                  `json:"voteCount"`
	Popularity   float64              `json:"popularity"`
	Genres       []GenreResponse      `json:"genres"`
	GenreIDs     []int                `json:"genreIds,omitempty"`
	Runtime      *int                 `json:"runtime,omitempty"`
	Cast         []CastMemberResponse `json:"cast,omitempty"`
	PosterPath   *string              `json:"posterPath"`
	BackdropPath *string              `json:"backdropPath"`
}

// NewGenreList shapes the genre listing, keeping the given order.
func NewGenreList(genres []domain.Genre) *GenreListResponse {
	return &GenreListResponse{Genres: newGenres(genres)}
}

// NewMovie shapes a single movie.
func NewMovie(m *domain.Movie) *MovieResponse {
	resp := &MovieResponse{
		ID:           m.ID,
		Title:        m.Title,
		Overview:     m.Overview,
		ReleaseDate:  m.ReleaseDate,
		VoteAverage:  m.VoteAverage,
		VoteCount:    m.VoteCount,
		Popularity:   m.Popularity,
		Genres:       newGenres(m.Genres),
		GenreIDs:     m.GenreIDs,
		Runtime:      m.Runtime,
		PosterPath:   m.PosterPath,
		BackdropPath: m.BackdropPath,
	}

	if len(m.Cast) > 0 {
		resp.Cast = make([]CastMemberResponse, len(m.Cast))
		for i, c := range m.Cast {
			resp.Cast[i] = CastMemberResponse{
				ID:          c.ID,
				Name:        c.Name,
				Character:   c.Character,
				Order:       c.Order,
				ProfilePath: c.ProfilePath,
			}
		}
	}

	return resp
}

// NewMoviePage shapes a listing page. At most domain.MaxPageSize results are
// kept, the page number echoes the request, and totals pass through unchanged.
func NewMoviePage(p *domain.Page[domain.Movie], requestedPage int) *PageResponse[MovieResponse] {
	limit := min(len(p.Results), domain.MaxPageSize)

	items := make([]MovieResponse, limit)
	for i := range limit {
		items[i] = *NewMovie(&p.Results[i])
	}

	return NewPageResponse(items, requestedPage, p.TotalPages, p.TotalResults, domain.MaxPageSize)
}

func newGenres(genres []domain.Genre) []GenreResponse {
	out := make([]GenreResponse, len(genres))
	for i, g := range genres {
		out[i] = GenreResponse{ID: g.ID, Name: g.Name}
	}

	return out
}
