package dto

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/movie-gateway/internal/domain"
)

// Query parameter bounds.
const (
	DefaultPage    = 1
	MaxPage        = 1000
	MaxQueryLength = 100
)

// Validated shapes. The tags carry the bounds; parsing happens before validation.
type (
	pageInput struct {
		Page int `form:"page" validate:"min=1,max=1000"`
	}

	genreInput struct {
		IDs []int `form:"genre" validate:"min=1,dive,gt=0"`
	}

	searchInput struct {
		Query string `form:"q" validate:"required,notblank,max=100"`
	}

	movieIDInput struct {
		ID int `form:"id" validate:"gt=0"`
	}
)

// PopularQuery is the validated input of the popular listing.
type PopularQuery struct {
	Page     int
	GenreIDs []int
}

// SearchQuery is the validated input of the search listing.
type SearchQuery struct {
	Query string
	Page  int
}

// popularParams and searchParams receive raw query strings from gin.
type popularParams struct {
	Page  string `form:"page"`
	Genre string `form:"genre"`
}

type searchParams struct {
	Query string `form:"q"`
	Page  string `form:"page"`
}

// ParsePage parses the page parameter. Empty means the first page.
func ParsePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultPage, nil
	}

	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(domain.CodeInvalidPage, "page",
			"page must be an integer between 1 and 1000")
	}

	if err := check(pageInput{Page: page}, domain.CodeInvalidPage); err != nil {
		return 0, err
	}

	return page, nil
}

// ParseGenreIDs parses a comma-separated list of genre ids.
// An empty string means no filter. Blank segments are skipped, duplicates
// collapse to their first occurrence, and a non-empty input that yields no ids
// is rejected.
func ParseGenreIDs(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}

	seen := make(map[int]struct{})
	ids := make([]int, 0, strings.Count(raw, ",")+1)

	for segment := range strings.SplitSeq(raw, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		id, err := strconv.Atoi(segment)
		if err != nil {
			return nil, domain.NewValidationError(domain.CodeInvalidGenre, "genre",
				"genre must be a comma-separated list of positive integers, got "+strconv.Quote(segment))
		}

		if _, dup := seen[id]; dup {
			continue
		}

		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if err := check(genreInput{IDs: ids}, domain.CodeInvalidGenre); err != nil {
		return nil, err
	}

	return ids, nil
}

// ParseSearchQuery trims the search text and enforces 1 to 100 characters.
func ParseSearchQuery(raw string) (string, error) {
	query := strings.TrimSpace(raw)

	if err := check(searchInput{Query: query}, domain.CodeInvalidQuery); err != nil {
		return "", err
	}

	return query, nil
}

// ParseMovieID parses the movie id path parameter.
func ParseMovieID(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.NewValidationError(domain.CodeMissingMovieID, "id", "movie id is required")
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(domain.CodeInvalidMovieID, "id",
			"id must be a positive integer")
	}

	if err := check(movieIDInput{ID: id}, domain.CodeInvalidMovieID); err != nil {
		return 0, err
	}

	return id, nil
}

// ParsePopularQuery binds and validates the popular listing's query string.
// The page is checked before the genre filter.
func ParsePopularQuery(c *gin.Context) (PopularQuery, error) {
	var params popularParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return PopularQuery{}, domain.NewValidationError(domain.CodeInvalidPage, "", err.Error())
	}

	page, err := ParsePage(params.Page)
	if err != nil {
		return PopularQuery{}, err
	}

	genreIDs, err := ParseGenreIDs(params.Genre)
	if err != nil {
		return PopularQuery{}, err
	}

	return PopularQuery{Page: page, GenreIDs: genreIDs}, nil
}

// ParseSearchParams binds and validates the search listing's query string.
// The query text is checked before the page.
func ParseSearchParams(c *gin.Context) (SearchQuery, error) {
	var params searchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return SearchQuery{}, domain.NewValidationError(domain.CodeInvalidQuery, "", err.Error())
	}

	query, err := ParseSearchQuery(params.Query)
	if err != nil {
		return SearchQuery{}, err
	}

	page, err := ParsePage(params.Page)
	if err != nil {
		return SearchQuery{}, err
	}

	return SearchQuery{Query: query, Page: page}, nil
}
