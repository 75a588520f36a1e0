// Package ddl contains SQLite-specific helpers for generating DDL.
//
// It maps logical or canonical types into SQLite column types. The mapping is
// intentionally simple and biased toward SQLite's storage classes.
package ddl

import "strings"

// MapType maps a type name (e.g., "int", "bool", "TEXT") into a SQLite column
// type.
//
// SQLite supports dynamic typing, so this mapping prefers canonical affinities:
//   - integer-ish types -> INTEGER
//   - boolean          -> INTEGER (0/1)
//   - float-ish types  -> REAL
//   - bytes            -> BLOB
//   - others           -> TEXT
func MapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "int", "integer", "bigint":
		return "INTEGER"
	case "bool", "boolean":
		return "INTEGER" // 0/1
	case "float", "double", "real":
		return "REAL"
	case "blob", "bytes", "binary":
		return "BLOB"
	default:
		return "TEXT"
	}
}
