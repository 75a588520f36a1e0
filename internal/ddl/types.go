package ddl

// ColumnDef describes a single column in a table definition. It uses simple,
// database-agnostic fields; dialect packages translate SQLType and the
// identity flags into their own spelling.
//
// Fields:
//   - Name: column name, emitted as-is
//   - SQLType: canonical storage type (INTEGER, TEXT, REAL, BLOB)
//   - Nullable: whether NULL is allowed
//   - PrimaryKey: whether the column is part of the primary key
//   - AutoIncrement: whether the backend generates the value on insert
//   - Default: raw default expression (e.g., 'anon', CURRENT_TIMESTAMP)
type ColumnDef struct {
	Name          string
	SQLType       string
	Nullable      bool
	PrimaryKey    bool
	AutoIncrement bool
	Default       string
}

// TableDef holds the table name (FQN) and an ordered list of columns. Column
// order is significant: renderers emit columns exactly in slice order.
type TableDef struct {
	FQN         string
	Columns     []ColumnDef
	IfNotExists bool
}

// PrimaryKeys returns the names of the primary-key columns in column order.
func (t TableDef) PrimaryKeys() []string {
	var out []string
	for _, c := range t.Columns {
		if c.PrimaryKey {
			out = append(out, c.Name)
		}
	}
	return out
}
