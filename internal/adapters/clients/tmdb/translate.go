package tmdb

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jsamuelsen/movie-gateway/internal/domain"
)

const (
	maxVoteAverage = 10.0
	releaseLayout  = "2006-01-02"
)

// errInvalidPayload marks a decoded body that violates the domain's invariants.
var errInvalidPayload = errors.New("invalid payload")

// translateGenres keeps upstream order and drops entries without an id or name.
func translateGenres(in []genreDTO) []domain.Genre {
	out := make([]domain.Genre, 0, len(in))
	for _, g := range in {
		if g.ID <= 0 || strings.TrimSpace(g.Name) == "" {
			continue
		}

		out = append(out, domain.Genre{ID: g.ID, Name: g.Name})
	}

	return out
}

// translateMovie converts a detail or listing payload into a domain movie.
func translateMovie(in *movieDTO) (*domain.Movie, error) {
	if in.ID <= 0 {
		return nil, fmt.Errorf("%w: movie id %d", errInvalidPayload, in.ID)
	}

	m := &domain.Movie{
		ID:           in.ID,
		Title:        in.Title,
		Overview:     in.Overview,
		ReleaseDate:  normalizeReleaseDate(in.ReleaseDate),
		VoteAverage:  clampVote(in.VoteAverage),
		VoteCount:    max(in.VoteCount, 0),
		Popularity:   in.Popularity,
		GenreIDs:     in.GenreIDs,
		Genres:       translateGenres(in.Genres),
		PosterPath:   optionalPath(in.PosterPath),
		BackdropPath: optionalPath(in.BackdropPath),
	}

	if in.Runtime != nil && *in.Runtime > 0 {
		runtime := *in.Runtime
		m.Runtime = &runtime
	}

	if in.Credits != nil {
		m.Cast = translateCast(in.Credits.Cast)
		m.SortCast()
	}

	return m, nil
}

func translateCast(in []castDTO) []domain.CastMember {
	out := make([]domain.CastMember, 0, len(in))
	for _, c := range in {
		if c.ID <= 0 {
			continue
		}

		out = append(out, domain.CastMember{
			ID:          c.ID,
			Name:        c.Name,
			Character:   c.Character,
			Order:       max(c.Order, 0),
			ProfilePath: optionalPath(c.ProfilePath),
		})
	}

	return out
}

// translatePage converts a listing page. Entries with an invalid id are dropped
// rather than failing the whole page.
func translatePage(in *pageDTO) *domain.Page[domain.Movie] {
	results := make([]domain.Movie, 0, len(in.Results))
	for i := range in.Results {
		m, err := translateMovie(&in.Results[i])
		if err != nil {
			continue
		}

		results = append(results, *m)
	}

	return &domain.Page[domain.Movie]{
		Results:      results,
		Page:         in.Page,
		TotalPages:   max(in.TotalPages, 0),
		TotalResults: max(in.TotalResults, 0),
	}
}

func clampVote(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > maxVoteAverage:
		return maxVoteAverage
	default:
		return v
	}
}

// normalizeReleaseDate returns YYYY-MM-DD or the empty string.
// TMDB occasionally sends full timestamps or garbage for unreleased titles.
func normalizeReleaseDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) < len(releaseLayout) {
		return ""
	}

	candidate := raw[:len(releaseLayout)]
	if _, err := time.Parse(releaseLayout, candidate); err != nil {
		return ""
	}

	return candidate
}

func optionalPath(p *string) *string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return nil
	}

	v := *p
	return &v
}
