package ddl

import (
	"strings"

	gddl "shelf/internal/ddl"
)

// BuildCreateTableSQL returns a Postgres CREATE TABLE IF NOT EXISTS statement
// for the given table definition. An auto-increment key is rendered as
// BIGSERIAL PRIMARY KEY; everything else follows the generic renderer.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	fqn, cols, err := gddl.RenderColumns(t, func(c gddl.ColumnDef) string {
		if c.AutoIncrement {
			return "BIGSERIAL"
		}
		return MapType(c.SQLType)
	}, "PRIMARY KEY")
	if err != nil {
		return "", err
	}
	return "CREATE TABLE IF NOT EXISTS " + fqn + " (" + strings.Join(cols, ", ") + ");", nil
}
