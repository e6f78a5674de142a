// Command mixport copies a YouTube playlist to Spotify.
//
// It cleans every video title, searches the catalog with several query
// variants, keeps the best match above the relevance threshold and creates a
// playlist with a generated name and description. Debugging commands
// (clean, match, name) expose each step on its own.
package main
