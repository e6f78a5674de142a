package youtube

import (
	"net/url"
	"regexp"
	"strings"
)

var playlistURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/playlist`),
	regexp.MustCompile(`youtube\.com/watch.*list=`),
	regexp.MustCompile(`youtu\.be/.*list=`),
	regexp.MustCompile(`music\.youtube\.com/playlist`),
	regexp.MustCompile(`music\.youtube\.com/watch.*list=`),
}

// IsPlaylistURL reports whether raw looks like a YouTube playlist or mix link.
func IsPlaylistURL(raw string) bool {
	for _, pattern := range playlistURLPatterns {
		if pattern.MatchString(raw) {
			return true
		}
	}
	return false
}

// PlaylistID extracts the list query parameter of a playlist link.
func PlaylistID(raw string) (string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	id := strings.TrimSpace(parsed.Query().Get("list"))
	return id, id != ""
}

// IsMix reports whether a list id names an auto-generated mix. Mixes are
// personalized and not readable through the Data API.
func IsMix(id string) bool {
	return strings.HasPrefix(id, "RD")
}

// WatchURL returns the canonical watch link of a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
