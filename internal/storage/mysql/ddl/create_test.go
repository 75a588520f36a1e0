package ddl

import (
	"strings"
	"testing"

	gddl "shelf/internal/ddl"
)

func TestMapType(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"INTEGER": "BIGINT",
		" bool ":  "BIGINT",
		"REAL":    "DOUBLE",
		"BLOB":    "LONGBLOB",
		"TEXT":    "TEXT",
		"":        "TEXT",
	}
	for in, want := range tests {
		if got := MapType(in); got != want {
			t.Fatalf("MapType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildCreateTableSQL(t *testing.T) {
	t.Parallel()

	def := gddl.TableDef{
		FQN: "book",
		Columns: []gddl.ColumnDef{
			{Name: "id", SQLType: "INTEGER", PrimaryKey: true, AutoIncrement: true},
			{Name: "author_id", SQLType: "INTEGER", Nullable: true},
			{Name: "title", SQLType: "TEXT", Nullable: true},
		},
	}

	got, err := BuildCreateTableSQL(def)
	if err != nil {
		t.Fatalf("BuildCreateTableSQL() error = %v", err)
	}
	want := "CREATE TABLE IF NOT EXISTS `book` (`id` BIGINT AUTO_INCREMENT PRIMARY KEY, `author_id` BIGINT, `title` TEXT);"
	if got != want {
		t.Fatalf("BuildCreateTableSQL() =\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildCreateTableSQLErrors(t *testing.T) {
	t.Parallel()

	_, err := BuildCreateTableSQL(gddl.TableDef{FQN: "t", Columns: []gddl.ColumnDef{{Name: "a"}}})
	if err == nil || !strings.Contains(err.Error(), "mysql ddl: column `a` missing SQLType") {
		t.Fatalf("BuildCreateTableSQL() error = %v", err)
	}
}
