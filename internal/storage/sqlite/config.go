// Package sqlite implements the SQLite storage backend.
package sqlite

import "time"

// Config holds SQLite repository configuration derived from storage.Config.
type Config struct {
	// DSN is a SQLite connection string or file path, e.g.:
	//   "file:shelf.db?cache=shared"
	//   "shelf.db" (interpreted by the driver)
	//   ":memory:"
	DSN string

	// BusyTimeout makes SQLite retry for up to this long when another
	// connection holds the file lock. Zero keeps the driver default.
	BusyTimeout time.Duration
}
