package matching

import "strings"

const (
	popularityWeight = 0.2
	nameWeight       = 0.4
	artistWeight     = 0.4
)

// Similarity is the Jaccard index of the lowercase whitespace token sets of a
// and b. It is 0 when either side has no tokens.
func Similarity(a, b string) float64 {
	left := tokenSet(a)
	right := tokenSet(b)
	if len(left) == 0 || len(right) == 0 {
		return 0
	}
	shared := 0
	for token := range left {
		if _, ok := right[token]; ok {
			shared++
		}
	}
	union := len(left) + len(right) - shared
	return float64(shared) / float64(union)
}

func tokenSet(text string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		set[field] = struct{}{}
	}
	return set
}

// Score rates candidate against the original source title. The result is in
// [0, 1].
func Score(candidate Candidate, original string) float64 {
	popularity := min(max(candidate.Popularity, 0), 100)
	score := popularityWeight * float64(popularity) / 100
	score += nameWeight * Similarity(candidate.Name, original)
	score += artistWeight * Similarity(strings.Join(candidate.Artists, " "), original)
	return min(score, 1.0)
}
