// Package titles cleans loosely structured video titles and turns them into
// catalog search queries.
//
// Cleaning applies an ordered list of noise-removal rules (release
// annotations, quality tags, hashtags, years, remix markers, emoji), then
// collapses whitespace and trims separator characters. Later rules operate on
// the output of earlier ones, so the rule order is part of the contract.
//
// Every function here is total: empty or pathological input yields an empty
// result, never an error.
package titles
