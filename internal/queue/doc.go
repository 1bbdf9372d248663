// Package queue persists censoring jobs in SQLite and exposes helpers for
// driving their lifecycle.
//
// The Store manages database connections, schema initialization, stats
// queries, heartbeat tracking, and stuck-item recovery. Items move from
// pending through processing to one of the terminal states (completed,
// failed, cancelled); the worker claims work with NextPending, which marks
// an item processing atomically so concurrent workers never share a job.
//
// The database is treated as transient storage for in-flight jobs rather
// than a long-term archive. Schema changes bump the version in schema.go;
// users clear the database to adopt the new schema.
package queue
