// Package catalog defines the raw content-API record types the engine
// consumes and loads them from the offline response cache.
//
// A Snapshot is an immutable view of one catalog state: the paginated
// translation records, the set of normalized fileset ids known to have
// timing data, and the optional per-translation extended metadata overlay.
// The engine recomputes every classification from a Snapshot; nothing here
// assumes network access.
package catalog
