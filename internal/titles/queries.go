package titles

import "fmt"

// MaxQueries caps the number of query variants generated per title.
const MaxQueries = 5

// SearchQueries builds up to MaxQueries distinct search strings for a raw
// title, most specific first. The cleaned title is always present, even when
// it is empty.
func SearchQueries(title string) []string {
	queries := make([]string, 0, MaxQueries)
	add := func(q string) {
		for _, existing := range queries {
			if existing == q {
				return
			}
		}
		queries = append(queries, q)
	}

	artist, work, ok := ExtractArtistTitle(title)
	if ok {
		add(artist + " " + work)
		add(work + " " + artist)
		add(fmt.Sprintf("track:%s artist:%s", work, artist))
	}

	cleaned := Clean(title)
	add(cleaned)

	normalized := NormalizeForSearch(cleaned)
	duplicate := false
	for _, q := range queries {
		if NormalizeForSearch(q) == normalized {
			duplicate = true
			break
		}
	}
	if !duplicate {
		queries = append(queries, normalized)
	}

	if len(queries) > MaxQueries {
		queries = queries[:MaxQueries]
	}
	return queries
}
