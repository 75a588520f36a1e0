// Package ddl provides SQLite-specific helpers for generating CREATE TABLE
// statements from the generic ddl.TableDef model.
//
// The builder here:
//   - Always emits CREATE TABLE IF NOT EXISTS.
//   - Leaves identifiers unquoted, matching the canonical ORM text.
//   - Renders a single auto-increment key as INTEGER PRIMARY KEY AUTOINCREMENT.
package ddl

import (
	gddl "shelf/internal/ddl"
)

// BuildCreateTableSQL returns a SQLite CREATE TABLE IF NOT EXISTS statement
// for the given table definition, e.g.:
//
//	CREATE TABLE IF NOT EXISTS author (id INTEGER PRIMARY KEY AUTOINCREMENT, age INTEGER, name TEXT);
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	cols := make([]gddl.ColumnDef, len(t.Columns))
	for i, c := range t.Columns {
		c.SQLType = MapType(c.SQLType)
		cols[i] = c
	}
	return gddl.BuildCreateTableSQL(gddl.TableDef{
		FQN:         t.FQN,
		Columns:     cols,
		IfNotExists: true,
	})
}
