// Package config loads, normalizes, and validates aircheck configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// AIRCHECK_STREAM_URL. The Config type centralizes every knob the CLI needs:
// the weekly schedule grid, capture and split thresholds, channel metadata,
// retention, notifications, and publishing.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
