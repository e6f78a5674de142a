// Package source defines how mixport reads the ordered items of a video
// playlist. Concrete listers live in subpackages.
package source

import (
	"context"
	"time"
)

// Item is one entry of a source playlist.
type Item struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Uploader string `json:"uploader,omitempty"`
	URL      string `json:"url,omitempty"`
	// Duration is zero when the source did not report one.
	Duration time.Duration `json:"duration,omitempty"`
}

// Lister returns the playable items behind a playlist reference in
// playlist order.
type Lister interface {
	ListItems(ctx context.Context, ref string) ([]Item, error)
}
