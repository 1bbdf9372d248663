// Package worker drives queued censoring jobs. It claims pending items
// from the SQLite queue, runs the pipeline for each, and persists the
// outcome: completed with a result path, requeued for retryable
// failures, or failed once retries are exhausted.
//
// A flock-based lock file in the state directory keeps a second worker
// from racing the first. Run polls until cancelled; RunAll drains the
// queue once and exits.
package worker
