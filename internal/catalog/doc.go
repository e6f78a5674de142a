// Package catalog defines the narrow contracts mixport needs from a music
// catalog and the boundary that adapts them to the matcher.
//
// Searcher and Mutator are implemented by catalog/spotify and decorated by
// searchcache. Boundary paces searches and reduces search failures to empty
// results so one bad query never aborts a transfer. FindCollection and
// AddItems hold the catalog-agnostic playlist helpers.
package catalog
