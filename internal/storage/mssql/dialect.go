package mssql

import (
	"context"
	"strconv"
	"strings"

	gddl "shelf/internal/ddl"
	"shelf/internal/storage"
	msddl "shelf/internal/storage/mssql/ddl"
)

// Dialect is the SQL Server storage.Dialect.
type Dialect struct{}

var _ storage.Dialect = Dialect{}

// Name implements storage.Dialect.
func (Dialect) Name() string { return "mssql" }

// Rebind implements storage.Dialect: "?" becomes @p1, @p2, ...
func (Dialect) Rebind(query string) string {
	return storage.RebindWith(query, func(n int) string { return "@p" + strconv.Itoa(n) })
}

// CreateTableSQL implements storage.Dialect.
func (Dialect) CreateTableSQL(def gddl.TableDef) (string, error) {
	return msddl.BuildCreateTableSQL(def)
}

// ListTablesSQL implements storage.Dialect.
func (Dialect) ListTablesSQL() string {
	return "SELECT name FROM sys.tables ORDER BY name;"
}

// InsertReturningID implements storage.Dialect with an OUTPUT clause.
func (Dialect) InsertReturningID(ctx context.Context, db storage.Execer, query string, args []any) (int64, error) {
	return storage.QueryID(ctx, db, OutputInsertedID(query), args)
}

// OutputInsertedID places "OUTPUT INSERTED.id" ahead of the VALUES (or
// DEFAULT VALUES) clause of a canonical INSERT statement.
func OutputInsertedID(query string) string {
	for _, marker := range []string{" VALUES (", " DEFAULT VALUES"} {
		if i := strings.Index(query, marker); i >= 0 {
			return query[:i] + " OUTPUT INSERTED.id" + query[i:]
		}
	}
	return query
}
