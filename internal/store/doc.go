// Package store persists classification results between runs.
//
// The ledger is backed by SQLite. Every sort run gets a UUID and rewrites
// the rows it touches: a (language, translation, canon) row always reflects
// the latest run's category and selected filesets, never a merge with an
// earlier run. To change the schema, update schema.sql and bump schemaVersion.
package store
