// Package services defines shared utilities consumed by the transfer pipeline
// and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, pipeline steps and track indexes
//     for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     into configuration, validation, lookup and upstream problems.
//   - Exit code mapping used by the CLI.
//
// Use these helpers when wiring new integrations so error handling and
// observability stay uniform across commands.
package services
