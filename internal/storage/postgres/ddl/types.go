// Package ddl contains Postgres-specific helpers for generating DDL.
package ddl

import "strings"

// MapType normalizes a canonical or logical type into a Postgres SQL type.
//
//	"int"/"integer"/"bool" -> BIGINT (booleans are stored as 0/1)
//	"real"/"float"         -> DOUBLE PRECISION
//	"blob"/"bytes"         -> BYTEA
//	everything else        -> TEXT
func MapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "int", "integer", "bigint", "bool", "boolean":
		return "BIGINT"
	case "real", "float", "double":
		return "DOUBLE PRECISION"
	case "blob", "bytes", "binary":
		return "BYTEA"
	default:
		return "TEXT"
	}
}
