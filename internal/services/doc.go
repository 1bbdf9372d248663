// Package services defines shared utilities consumed by the pipeline stage
// handlers and external tool wrappers.
//
// Key responsibilities:
//   - Context helpers that stamp queue item IDs, stage names, and run
//     identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification (retryable vs deterministic) uniform across stages.
package services
