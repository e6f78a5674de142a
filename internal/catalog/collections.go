package catalog

import (
	"context"
	"fmt"
	"strings"
)

// FindCollection returns the user's playlist whose name equals name,
// ignoring case and surrounding whitespace.
func FindCollection(ctx context.Context, m Mutator, name string) (Collection, bool, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return Collection{}, false, nil
	}
	collections, err := m.ListCollections(ctx)
	if err != nil {
		return Collection{}, false, fmt.Errorf("list collections: %w", err)
	}
	for _, c := range collections {
		if strings.ToLower(strings.TrimSpace(c.Name)) == want {
			return c, true, nil
		}
	}
	return Collection{}, false, nil
}

// AddItems appends refs to collection id in order, splitting them into
// requests of at most batchSize items. A batchSize outside 1..MaxBatchSize
// falls back to MaxBatchSize.
func AddItems(ctx context.Context, m Mutator, id string, refs []string, batchSize int) error {
	if batchSize <= 0 || batchSize > MaxBatchSize {
		batchSize = MaxBatchSize
	}
	for start := 0; start < len(refs); start += batchSize {
		end := min(start+batchSize, len(refs))
		if err := m.AddItems(ctx, id, refs[start:end]); err != nil {
			return fmt.Errorf("add items %d-%d: %w", start+1, end, err)
		}
	}
	return nil
}
