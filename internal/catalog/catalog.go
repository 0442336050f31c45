// Package catalog queries an external music catalog for tracks.
package catalog

import (
	"context"
	"errors"
)

// ErrUnavailable wraps catalog-side failures: network errors, upstream
// non-2xx responses and timeouts.
var ErrUnavailable = errors.New("catalog unavailable")

// Track is a single search result from the catalog.
type Track struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	URL    string `json:"url,omitempty"`
	Image  string `json:"image,omitempty"`
}

// Searcher performs a free-text track search. It returns one page of
// results plus the catalog's total result count.
type Searcher interface {
	Search(ctx context.Context, query string, offset, limit int) ([]Track, int, error)
}
