// Package ddl contains MySQL-specific helpers for generating DDL.
package ddl

import "strings"

// MapType maps a canonical or logical type string into a MySQL column type.
// Unknown or empty kinds fall back to TEXT.
func MapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "int", "integer", "bigint", "bool", "boolean":
		return "BIGINT"
	case "real", "float", "double":
		return "DOUBLE"
	case "blob", "bytes", "binary":
		return "LONGBLOB"
	default:
		return "TEXT"
	}
}
