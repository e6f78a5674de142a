// Package transfer runs the end-to-end pipeline that turns a source playlist
// into a catalog playlist.
//
// A Runner lists the source items, generates search queries for each title,
// selects the best catalog match, names the resulting collection, creates it
// and adds the matched tracks. Every run produces a report that is written as
// text and JSON and pushed to ntfy when notifications are configured.
//
// Playlist creation holds a file lock so two concurrent runs cannot both see
// a name as free and create duplicate playlists.
package transfer
