// Package matching scores catalog candidates against a raw source title and
// selects the best one across a set of search queries.
//
// Scoring is a weighted blend of popularity and token-set similarity between
// the original title and the candidate's name and performers. Selection pools
// every candidate from every query, ranks by score and only accepts the top
// entry when it clears the relevance threshold. A missing match is a normal
// outcome reported through the boolean return, never an error.
package matching
