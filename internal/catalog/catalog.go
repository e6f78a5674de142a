package catalog

import (
	"context"

	"mixport/internal/matching"
)

// MaxBatchSize is the largest number of items a single add request accepts.
const MaxBatchSize = 100

// Searcher finds tracks for a free-text query.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]matching.Candidate, error)
}

// Collection is a playlist owned by the authenticated user.
type Collection struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	TrackCount int    `json:"track_count"`
}

// Mutator creates and fills playlists.
type Mutator interface {
	CreateCollection(ctx context.Context, name, description string, public bool) (string, error)
	// AddItems appends refs in a single request of at most MaxBatchSize items.
	AddItems(ctx context.Context, id string, refs []string) error
	ListCollections(ctx context.Context) ([]Collection, error)
	CollectionURL(id string) string
}
