package titles

import (
	"regexp"
	"strings"
)

var accentFolder = strings.NewReplacer(
	"à", "a", "á", "a", "â", "a", "ã", "a", "ä", "a", "å", "a",
	"è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "í", "i", "î", "i", "ï", "i",
	"ò", "o", "ó", "o", "ô", "o", "õ", "o", "ö", "o",
	"ù", "u", "ú", "u", "û", "u", "ü", "u",
	"ç", "c",
	"ñ", "n",
)

var nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// NormalizeForSearch lowercases text, folds common Latin accents, replaces
// punctuation with spaces and collapses whitespace. The result is only used
// to detect duplicate queries.
func NormalizeForSearch(text string) string {
	if text == "" {
		return ""
	}
	normalized := strings.ToLower(text)
	normalized = accentFolder.Replace(normalized)
	normalized = nonWordRe.ReplaceAllString(normalized, " ")
	normalized = whitespaceRe.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}
