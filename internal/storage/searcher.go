package storage

import (
	"context"

	"github.com/DjordjeVuckovic/torrent-hunter/internal/search"
)

// Searcher executes fully resolved criteria against one backend.
// Implementations classify execution failures with apperr.NewBackend.
type Searcher interface {
	Search(ctx context.Context, c *search.Criteria) (*search.Result, error)
	// Name identifies the backend in logs, metrics and cache keys
	Name() string
}
