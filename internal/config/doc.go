// Package config loads, normalizes, and validates censorr configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI and worker need: catalog location, matcher thresholds, stream
// selection languages, QC tuning, remux naming, and log routing.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical values, and clear validation errors.
package config
