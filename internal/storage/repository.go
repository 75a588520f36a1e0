// Package storage contains backend-agnostic contracts for the relational
// store behind the ORM: the Repository handle, the Dialect that renders
// backend-specific SQL, and a registry that maps a storage kind ("sqlite",
// "postgres", ...) to the factory that opens it.
package storage

import (
	"context"
	"database/sql"
	"time"

	"shelf/internal/ddl"
)

// Config selects and configures a storage backend.
type Config struct {
	// Kind is the registered backend name, e.g. "sqlite".
	Kind string

	// DSN is passed to the backend's driver unchanged.
	DSN string

	// BusyTimeout is how long a backend waits on a locked file before failing.
	// Only file-locking backends (sqlite) use it; zero keeps the driver default.
	BusyTimeout time.Duration
}

// Repository is an open store: exactly one physical connection wrapped in a
// *sql.DB plus the dialect used to talk to it.
//
// Implementations cap the pool at one connection, so concurrent callers queue
// on it and never share a connection mid-statement.
type Repository interface {
	DB() *sql.DB
	Dialect() Dialect
	Close()
}

// Execer is the subset of *sql.DB used to run generated statements.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect renders the backend-specific parts of generated SQL. The ORM emits
// canonical SQLite-flavoured text with "?" placeholders; dialects adapt it.
type Dialect interface {
	// Name is the storage kind this dialect belongs to.
	Name() string

	// Rebind rewrites "?" placeholders into the backend's bind syntax.
	Rebind(query string) string

	// CreateTableSQL renders an idempotent CREATE TABLE for def.
	CreateTableSQL(def ddl.TableDef) (string, error)

	// ListTablesSQL returns a query yielding one user table name per row.
	ListTablesSQL() string

	// InsertReturningID executes a canonical INSERT statement and returns the
	// identity the backend generated for the new row.
	InsertReturningID(ctx context.Context, db Execer, query string, args []any) (int64, error)
}
