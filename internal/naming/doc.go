// Package naming derives a display name and description for a collection of
// source titles.
//
// Analyze counts leading performers, genre keyword hits and context flags
// across the titles. A Generator turns that analysis into a name and a
// description by picking from fixed template pools. The random choice is
// delegated to a Picker so callers can make the output deterministic.
package naming
