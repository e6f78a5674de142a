package titles

import (
	"regexp"
	"strings"
)

// Separators delimit performer from work, in priority order.
var Separators = []string{"-", "–", "—", "|", "•", ":", "/", `\`}

// edgeCutset holds the characters trimmed from both ends of a cleaned title.
const edgeCutset = " -–—|•:/\\"

var whitespaceRe = regexp.MustCompile(`[\s\p{Z}]+`)

// Clean strips noise annotations from a raw title, collapses whitespace and
// trims leading/trailing separators. The pass repeats until the title stops
// changing, so annotations exposed by an earlier removal are caught too.
func Clean(title string) string {
	cleaned := title
	for cleaned != "" {
		next := cleanPass(cleaned)
		if next == cleaned {
			break
		}
		cleaned = next
	}
	return cleaned
}

// cleanPass never grows its input, which bounds the loop in Clean.
func cleanPass(title string) string {
	for _, r := range noiseRules {
		title = r.pattern.ReplaceAllString(title, "")
	}
	title = whitespaceRe.ReplaceAllString(title, " ")
	return strings.Trim(title, edgeCutset)
}

// ExtractArtistTitle splits a cleaned title into performer and work on the
// first separator that yields two parts longer than one character. When no
// separator qualifies ok is false, artist is empty and work is the cleaned
// title.
func ExtractArtistTitle(title string) (artist, work string, ok bool) {
	cleaned := Clean(title)
	for _, sep := range Separators {
		before, after, found := strings.Cut(cleaned, sep)
		if !found {
			continue
		}
		before = strings.TrimSpace(before)
		after = strings.TrimSpace(after)
		if len([]rune(before)) > 1 && len([]rune(after)) > 1 {
			return before, after, true
		}
	}
	return "", cleaned, false
}
