// Package ddl defines a small, backend-agnostic model for SQL DDL and a
// renderer for the canonical single-line CREATE TABLE form used by the ORM.
//
// The canonical renderer:
//
//   - Does not quote identifiers; it emits TableDef.FQN and ColumnDef.Name as-is.
//     Callers validate identifiers before they reach this package.
//   - Inlines PRIMARY KEY (and AUTOINCREMENT) when exactly one column is a key,
//     and falls back to a trailing PRIMARY KEY (...) clause otherwise.
//   - Treats ColumnDef.Default as raw SQL.
//
// Backend packages (internal/storage/<kind>/ddl) wrap or replace
// BuildCreateTableSQL using the same TableDef/ColumnDef types.
package ddl

import (
	"fmt"
	"strings"
)

// BuildCreateTableSQL renders a CREATE TABLE statement from a TableDef.
//
// Rules:
//
//   - t.FQN must be non-empty and at least one column is required.
//
//   - Each column must have a non-empty Name and SQLType.
//
//   - A column is rendered as:
//
//     <Name> <SQLType> [PRIMARY KEY [AUTOINCREMENT]] [NOT NULL] [DEFAULT <Default>]
//
//     NOT NULL is added when Nullable == false, except on an inline primary key.
//
//   - The statement is emitted on one line:
//
//     CREATE TABLE [IF NOT EXISTS] <FQN> (<col1-def>, <col2-def>[, PRIMARY KEY (<pks>)]);
func BuildCreateTableSQL(t TableDef) (string, error) {
	fqn, cols, err := RenderColumns(t, func(c ColumnDef) string { return c.SQLType }, "PRIMARY KEY AUTOINCREMENT")
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	if t.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(fqn)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(");")
	return sb.String(), nil
}

// RenderColumns validates t and renders each column definition. typeOf
// chooses the column type for a dialect; identity is the clause appended to
// a single inline auto-increment primary key (e.g. "PRIMARY KEY AUTOINCREMENT").
// A trailing PRIMARY KEY clause is appended for composite keys.
func RenderColumns(t TableDef, typeOf func(ColumnDef) string, identity string) (string, []string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", nil, fmt.Errorf("ddl: table FQN must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", nil, fmt.Errorf("ddl: at least one column is required")
	}

	pks := t.PrimaryKeys()
	inlinePK := len(pks) == 1

	cols := make([]string, 0, len(t.Columns)+1)
	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", nil, fmt.Errorf("ddl: column with empty name in table %s", fqn)
		}
		if strings.TrimSpace(c.SQLType) == "" {
			return "", nil, fmt.Errorf("ddl: column %s missing SQLType", name)
		}
		typ := strings.TrimSpace(typeOf(c))

		var sb strings.Builder
		sb.WriteString(name)
		sb.WriteByte(' ')
		sb.WriteString(typ)

		inline := inlinePK && c.PrimaryKey
		switch {
		case inline && c.AutoIncrement:
			sb.WriteString(" " + identity)
		case inline:
			sb.WriteString(" PRIMARY KEY")
		case !c.Nullable:
			sb.WriteString(" NOT NULL")
		}

		if def := strings.TrimSpace(c.Default); def != "" {
			sb.WriteString(" DEFAULT ")
			sb.WriteString(def)
		}

		cols = append(cols, sb.String())
	}

	if len(pks) > 1 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}
	return fqn, cols, nil
}
