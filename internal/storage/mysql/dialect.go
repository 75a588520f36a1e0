package mysql

import (
	"context"
	"strings"

	gddl "shelf/internal/ddl"
	"shelf/internal/storage"
	myddl "shelf/internal/storage/mysql/ddl"
)

// Dialect is the MySQL storage.Dialect. MySQL binds "?" natively.
type Dialect struct{}

var _ storage.Dialect = Dialect{}

// Name implements storage.Dialect.
func (Dialect) Name() string { return "mysql" }

// Rebind implements storage.Dialect.
func (Dialect) Rebind(query string) string { return query }

// CreateTableSQL implements storage.Dialect.
func (Dialect) CreateTableSQL(def gddl.TableDef) (string, error) {
	return myddl.BuildCreateTableSQL(def)
}

// ListTablesSQL implements storage.Dialect.
func (Dialect) ListTablesSQL() string {
	return "SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE' ORDER BY table_name;"
}

// InsertReturningID implements storage.Dialect using LastInsertId. MySQL has
// no DEFAULT VALUES form, so it is rewritten to an empty column list.
func (Dialect) InsertReturningID(ctx context.Context, db storage.Execer, query string, args []any) (int64, error) {
	query = strings.Replace(query, " DEFAULT VALUES", " () VALUES ()", 1)
	return storage.LastInsertID(ctx, db, query, args)
}
