package postgres

import (
	"context"
	"strconv"
	"strings"

	gddl "shelf/internal/ddl"
	"shelf/internal/storage"
	pgddl "shelf/internal/storage/postgres/ddl"
)

// Dialect is the Postgres storage.Dialect.
type Dialect struct{}

var _ storage.Dialect = Dialect{}

// Name implements storage.Dialect.
func (Dialect) Name() string { return "postgres" }

// Rebind implements storage.Dialect: "?" becomes $1, $2, ...
func (Dialect) Rebind(query string) string {
	return storage.RebindWith(query, func(n int) string { return "$" + strconv.Itoa(n) })
}

// CreateTableSQL implements storage.Dialect.
func (Dialect) CreateTableSQL(def gddl.TableDef) (string, error) {
	return pgddl.BuildCreateTableSQL(def)
}

// ListTablesSQL implements storage.Dialect.
func (Dialect) ListTablesSQL() string {
	return "SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_type = 'BASE TABLE' ORDER BY table_name;"
}

// InsertReturningID implements storage.Dialect. Postgres drivers do not
// report LastInsertId, so the INSERT is extended with RETURNING id.
func (d Dialect) InsertReturningID(ctx context.Context, db storage.Execer, query string, args []any) (int64, error) {
	return storage.QueryID(ctx, db, ReturningID(query), args)
}

// ReturningID appends "RETURNING id" to a canonical INSERT statement.
func ReturningID(query string) string {
	q := strings.TrimSuffix(strings.TrimSpace(query), ";")
	return q + " RETURNING id;"
}
