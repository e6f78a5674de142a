// Package report records the outcome of a transfer run and persists it as
// a human-readable text file plus a JSON sibling.
package report
