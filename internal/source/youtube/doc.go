// Package youtube lists playlist items through the YouTube Data API v3.
//
// Playlist pages are read sequentially, then video durations are fetched in
// batches of 50 ids on a bounded errgroup. Unavailable entries and items
// outside the configured duration bounds are dropped while playlist order is
// kept. URL helpers validate playlist links and extract their list id.
package youtube
