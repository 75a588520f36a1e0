package ddl

import (
	"fmt"
	"strings"

	gddl "shelf/internal/ddl"
)

// BuildCreateTableSQL returns a MySQL CREATE TABLE IF NOT EXISTS statement
// with identifiers in backticks and an auto-increment key rendered as
// BIGINT AUTO_INCREMENT PRIMARY KEY.
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
	}, "AUTO_INCREMENT PRIMARY KEY")
	if err != nil {
		return "", fmt.Errorf("mysql %w", err)
	}
	return "CREATE TABLE IF NOT EXISTS " + quoteIdent(fqn) + " (" + strings.Join(cols, ", ") + ");", nil
}

// quoteIdent wraps an identifier in backticks, doubling embedded backticks.
func quoteIdent(id string) string {
	return "`" + strings.ReplaceAll(id, "`", "``") + "`"
}
