// Package session persists analysis sessions in SQLite and exposes helpers
// for driving their lifecycle.
//
// The Store manages database connections, schema initialization, stats
// queries, and interrupted-session recovery. A session row captures the
// source video, pipeline status, progress, the export location, and error
// details so the CLI can report on past runs without re-analyzing.
//
// The database is transient bookkeeping for analysis runs rather than a
// long-term archive; schema changes bump schemaVersion in schema.go and
// users clear the database to adopt the new schema.
package session
