package ddl

import (
	"strconv"
	"testing"

	gddl "shelf/internal/ddl"
)

// TestBuildCreateTableSQL checks the exact SQLite text for the identity column
// plus data columns, and that IF NOT EXISTS is always present.
func TestBuildCreateTableSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		def  gddl.TableDef
		want string
	}{
		{
			name: "author",
			def: gddl.TableDef{
				FQN: "author",
				Columns: []gddl.ColumnDef{
					{Name: "id", SQLType: "INTEGER", PrimaryKey: true, AutoIncrement: true},
					{Name: "age", SQLType: "INTEGER", Nullable: true},
					{Name: "name", SQLType: "TEXT", Nullable: true},
				},
			},
			want: "CREATE TABLE IF NOT EXISTS author (id INTEGER PRIMARY KEY AUTOINCREMENT, age INTEGER, name TEXT);",
		},
		{
			name: "book with foreign key column",
			def: gddl.TableDef{
				FQN: "book",
				Columns: []gddl.ColumnDef{
					{Name: "id", SQLType: "INTEGER", PrimaryKey: true, AutoIncrement: true},
					{Name: "author_id", SQLType: "INTEGER", Nullable: true},
					{Name: "published", SQLType: "boolean", Nullable: true},
					{Name: "title", SQLType: "TEXT", Nullable: true},
				},
			},
			want: "CREATE TABLE IF NOT EXISTS book (id INTEGER PRIMARY KEY AUTOINCREMENT, author_id INTEGER, published INTEGER, title TEXT);",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := BuildCreateTableSQL(tt.def)
			if err != nil {
				t.Fatalf("BuildCreateTableSQL() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("BuildCreateTableSQL() =\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

// TestBuildCreateTableSQLErrors validates that generic validation errors
// surface through the SQLite builder.
func TestBuildCreateTableSQLErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		def  gddl.TableDef
	}{
		{name: "empty FQN", def: gddl.TableDef{FQN: "  ", Columns: []gddl.ColumnDef{{Name: "id", SQLType: "INTEGER"}}}},
		{name: "no columns", def: gddl.TableDef{FQN: "events"}},
		{name: "column empty name", def: gddl.TableDef{FQN: "events", Columns: []gddl.ColumnDef{{Name: " ", SQLType: "TEXT"}}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sql, err := BuildCreateTableSQL(tt.def)
			if err == nil {
				t.Fatalf("BuildCreateTableSQL(%+v) error = nil, want non-nil", tt.def)
			}
			if sql != "" {
				t.Fatalf("BuildCreateTableSQL(%+v) SQL = %q, want empty string on error", tt.def, sql)
			}
		})
	}
}

// BenchmarkBuildCreateTableSQLWide measures performance for a wide table.
func BenchmarkBuildCreateTableSQLWide(b *testing.B) {
	cols := []gddl.ColumnDef{{Name: "id", SQLType: "INTEGER", PrimaryKey: true, AutoIncrement: true}}
	for i := 0; i < 64; i++ {
		cols = append(cols, gddl.ColumnDef{Name: "col_" + strconv.Itoa(i), SQLType: "TEXT", Nullable: true})
	}
	def := gddl.TableDef{FQN: "wide", Columns: cols}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := BuildCreateTableSQL(def); err != nil {
			b.Fatalf("BuildCreateTableSQL() error = %v", err)
		}
	}
}
