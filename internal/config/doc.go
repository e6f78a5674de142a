// Package config loads, normalizes, and validates mixport configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SPOTIFY_CLIENT_ID and YOUTUBE_API_KEY. The Config type centralizes every
// knob the CLI needs: report and cache directories, catalog credentials,
// matching thresholds, and playlist creation defaults.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
