// Package domain contains core business entities and rules.
package domain

import "slices"

// MaxPageSize is the largest number of results a single page may carry.
const MaxPageSize = 20

// Genre is a movie genre. Identity is the ID; the name is display text.
type Genre struct {
	ID   int
	Name string
}

// CastMember is a credited performer. Order is the billing position.
type CastMember struct {
	ID          int
	Name        string
	Character   string
	Order       int
	ProfilePath *string
}

// Movie is a movie as known to this service. It has no knowledge of the
// provider it was fetched from.
type Movie struct {
	// ID is the positive provider identifier.
	ID int

	Title    string
	Overview string

	// ReleaseDate is formatted YYYY-MM-DD, or empty when unknown.
	ReleaseDate string

	// VoteAverage is always within [0, 10].
	VoteAverage float64
	VoteCount   int
	Popularity  float64

	// Genres is populated on detail lookups.
	Genres []Genre

	// GenreIDs is populated on listings, where only ids are known.
	GenreIDs []int

	// Runtime is in minutes. Nil in listings.
	Runtime *int

	// Cast is sorted by billing order on detail lookups.
	Cast []CastMember

	PosterPath   *string
	BackdropPath *string
}

// HasGenres reports whether the movie carries every one of the given genre ids.
// Both listing ids and detail genres are considered.
func (m *Movie) HasGenres(ids []int) bool {
	for _, id := range ids {
		if slices.Contains(m.GenreIDs, id) {
			continue
		}

		if slices.ContainsFunc(m.Genres, func(g Genre) bool { return g.ID == id }) {
			continue
		}

		return false
	}

	return true
}

// SortCast orders the cast by billing order, keeping provider order for ties.
func (m *Movie) SortCast() {
	slices.SortStableFunc(m.Cast, func(a, b CastMember) int {
		return a.Order - b.Order
	})
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Results      []T
	Page         int
	TotalPages   int
	TotalResults int
}
