package sqlite

import (
	"context"

	gddl "shelf/internal/ddl"
	"shelf/internal/storage"
	sqliteddl "shelf/internal/storage/sqlite/ddl"
)

// Dialect is the SQLite storage.Dialect. Generated SQL is already in SQLite
// form, so most methods pass text through.
type Dialect struct{}

var _ storage.Dialect = Dialect{}

// Name implements storage.Dialect.
func (Dialect) Name() string { return "sqlite" }

// Rebind implements storage.Dialect; SQLite binds "?" natively.
func (Dialect) Rebind(query string) string { return query }

// CreateTableSQL implements storage.Dialect.
func (Dialect) CreateTableSQL(def gddl.TableDef) (string, error) {
	return sqliteddl.BuildCreateTableSQL(def)
}

// ListTablesSQL implements storage.Dialect. SQLite's own bookkeeping tables
// (sqlite_sequence for AUTOINCREMENT) are excluded.
func (Dialect) ListTablesSQL() string {
	return "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name;"
}

// InsertReturningID implements storage.Dialect using LastInsertId.
func (Dialect) InsertReturningID(ctx context.Context, db storage.Execer, query string, args []any) (int64, error) {
	return storage.LastInsertID(ctx, db, query, args)
}
