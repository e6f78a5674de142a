// Package spotify provides the minimal Spotify Web API client used to match
// and publish playlists.
//
// It authenticates with a long-lived refresh token, caches access tokens
// until shortly before they expire, and retries transient failures
// (network errors, 5xx, 429) with exponential backoff. Track search results
// are mapped to matching.Candidate so the selector can score them. Options
// allow tests to supply custom HTTP clients and shorter retry delays.
package spotify
