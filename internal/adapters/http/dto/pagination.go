package dto

// PageResponse is the paginated result envelope.
type PageResponse[T any] struct {
	Results      []T `json:"results"`
	Page         int `json:"page"`
	TotalPages   int `json:"totalPages"`
	TotalResults int `json:"totalResults"`
}

// NewPageResponse builds an envelope for the requested page.
// Results are trimmed to limit and never null. Totals are copied as given.
func NewPageResponse[T any](items []T, requestedPage, totalPages, totalResults, limit int) *PageResponse[T] {
	if len(items) > limit {
		items = items[:limit]
	}

	if items == nil {
		items = []T{}
	}

	return &PageResponse[T]{
		Results:      items,
		Page:         requestedPage,
		TotalPages:   totalPages,
		TotalResults: totalResults,
	}
}
