// Package ddl contains MSSQL-specific helpers for generating DDL.
//
// It maps the ORM's canonical column types (INTEGER, TEXT, REAL, BLOB) into
// SQL Server types.
package ddl

import "strings"

// MapType maps a canonical or logical type string into a SQL Server column
// type. Unknown or empty kinds fall back to NVARCHAR(MAX).
func MapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "int", "integer", "bigint", "bool", "boolean":
		return "BIGINT"
	case "real", "float", "double":
		return "FLOAT"
	case "blob", "bytes", "binary":
		return "VARBINARY(MAX)"
	default:
		return "NVARCHAR(MAX)"
	}
}
