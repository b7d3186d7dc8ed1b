// Package store persists confirmed album ratings in a local SQLite
// database (modernc.org/sqlite, no cgo).
//
// Two tables: artists keyed by the catalog artist id, albums keyed by the
// catalog release-group id with a cascading foreign key to the artist.
// Rows are only ever created or replaced by a committed edit session;
// nothing in this program deletes them.
package store
