// Package searchcache persists catalog search results in SQLite.
//
// Cache.Wrap decorates a catalog.Searcher: lookups are keyed by the
// whitespace-folded, lower-cased query plus the requested limit, and rows
// younger than the TTL are served without touching the network. Failed
// searches are never stored. The database runs in WAL mode with a busy
// timeout and retries writes that still hit SQLITE_BUSY.
package searchcache
