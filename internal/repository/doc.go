// Package repository defines the storage interface for exported feeds.
//
// A Run is one export of an object feed. Saving a run stores its usage
// points, meter readings, interval blocks and readings; reading it back
// returns flat records suitable for listing.
//
// # SQLite Implementation
//
// The sqlite subpackage implements Repository with modernc.org/sqlite. The
// schema is migrated on open, foreign keys cascade run deletion, and every
// run is written in a single transaction. Tests use in-memory databases.
package repository
