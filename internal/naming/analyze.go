package naming

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const topArtistLimit = 5

var (
	leadingArtistRe = regexp.MustCompile(`^([^-]+?)(?:\s*[-–]|\s+feat\.|\s+ft\.)`)
	bracketedRe     = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)
)

// ArtistCount is a performer and the number of titles it leads.
type ArtistCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// GenreScore is a genre tag and the number of its keywords found.
type GenreScore struct {
	Genre string `json:"genre"`
	Hits  int    `json:"hits"`
}

// Analysis summarizes a set of titles.
type Analysis struct {
	TrackCount int           `json:"track_count"`
	Artists    []string      `json:"artists"`
	TopArtists []ArtistCount `json:"top_artists"`
	Genres     []GenreScore  `json:"genres"`
	Contexts   []string      `json:"contexts"`
}

// HasGenre reports whether tag was detected.
func (a Analysis) HasGenre(tag string) bool {
	return hasGenre(a.Genres, tag)
}

// HasContext reports whether the context flag is set.
func (a Analysis) HasContext(tag string) bool {
	for _, c := range a.Contexts {
		if c == tag {
			return true
		}
	}
	return false
}

func hasGenre(genres []GenreScore, tag string) bool {
	for _, g := range genres {
		if g.Genre == tag {
			return true
		}
	}
	return false
}

// Analyze extracts performers, genres and context flags from titles.
func Analyze(titles []string) Analysis {
	analysis := Analysis{TrackCount: len(titles)}

	for _, title := range titles {
		if artist, ok := leadingArtist(title); ok {
			analysis.Artists = append(analysis.Artists, artist)
		}
	}

	corpus := strings.ToLower(strings.Join(titles, " "))
	for _, group := range genreKeywords {
		hits := 0
		for _, keyword := range group.keywords {
			if strings.Contains(corpus, keyword) {
				hits++
			}
		}
		if hits > 0 {
			analysis.Genres = append(analysis.Genres, GenreScore{Genre: group.tag, Hits: hits})
		}
	}
	sort.SliceStable(analysis.Genres, func(i, j int) bool {
		return analysis.Genres[i].Hits > analysis.Genres[j].Hits
	})

	for _, group := range contextKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(corpus, keyword) {
				analysis.Contexts = append(analysis.Contexts, group.tag)
				break
			}
		}
	}

	analysis.TopArtists = mostCommon(analysis.Artists, topArtistLimit)
	return analysis
}

func leadingArtist(title string) (string, bool) {
	match := leadingArtistRe.FindStringSubmatch(strings.TrimSpace(title))
	if match == nil {
		return "", false
	}
	artist := strings.TrimSpace(match[1])
	artist = strings.TrimSpace(bracketedRe.ReplaceAllString(artist, ""))
	if utf8.RuneCountInString(artist) <= 1 {
		return "", false
	}
	return artist, true
}

// mostCommon counts values and returns the limit most frequent, ties in
// first-seen order.
func mostCommon(values []string, limit int) []ArtistCount {
	index := make(map[string]int, len(values))
	var counts []ArtistCount
	for _, v := range values {
		if i, ok := index[v]; ok {
			counts[i].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, ArtistCount{Name: v, Count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}
