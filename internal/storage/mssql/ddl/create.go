// Package ddl provides MSSQL-specific helpers for generating CREATE TABLE
// statements from the generic ddl.TableDef model.
//
// The builder here:
//   - Uses SQL Server-style identifier quoting: [schema].[table], [col].
//   - Wraps CREATE TABLE in an IF OBJECT_ID(...) IS NULL guard since T-SQL
//     does not support CREATE TABLE IF NOT EXISTS.
//   - Renders an auto-increment key as BIGINT IDENTITY(1,1) PRIMARY KEY.
package ddl

import (
	"fmt"
	"strings"

	gddl "shelf/internal/ddl"
)

// BuildCreateTableSQL returns a T-SQL statement that creates a table matching
// the provided definition if it does not already exist:
//
//	IF OBJECT_ID(N'[author]', N'U') IS NULL CREATE TABLE [author] ([id] BIGINT IDENTITY(1,1) PRIMARY KEY, [age] BIGINT, [name] NVARCHAR(MAX));
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	quoted := gddl.TableDef{FQN: t.FQN, Columns: make([]gddl.ColumnDef, len(t.Columns))}
	for i, c := range t.Columns {
		if strings.TrimSpace(c.Name) != "" {
			c.Name = quoteIdent(strings.TrimSpace(c.Name))
		}
		quoted.Columns[i] = c
	}

	fqn, cols, err := gddl.RenderColumns(quoted, func(c gddl.ColumnDef) string {
		if c.AutoIncrement {
			return "BIGINT"
		}
		return MapType(c.SQLType)
	}, "IDENTITY(1,1) PRIMARY KEY")
	if err != nil {
		return "", fmt.Errorf("mssql %w", err)
	}

	fqnQuoted := quoteFQN(fqn)
	return fmt.Sprintf(
		"IF OBJECT_ID(N'%s', N'U') IS NULL CREATE TABLE %s (%s);",
		fqnQuoted,
		fqnQuoted,
		strings.Join(cols, ", "),
	), nil
}

// quoteIdent quotes a single identifier segment for SQL Server using
// bracket syntax, escaping any closing brackets.
//
//	name      -> [name]
//	weird]id  -> [weird]]id]
func quoteIdent(id string) string {
	return "[" + strings.ReplaceAll(id, "]", "]]") + "]"
}

// quoteFQN quotes a possibly schema-qualified table name, e.g.:
//
//	"dbo.author"  -> [dbo].[author]
//	"author"      -> [author]
func quoteFQN(fqn string) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, quoteIdent(p))
	}
	return strings.Join(out, ".")
}
