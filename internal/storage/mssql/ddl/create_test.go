package ddl

import (
	"strings"
	"testing"

	gddl "shelf/internal/ddl"
)

// TestQuoteIdent verifies SQL Server identifier quoting and escaping behavior.
func TestQuoteIdent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		id   string
		want string
	}{
		{name: "simple", id: "name", want: "[name]"},
		{name: "empty", id: "", want: "[]"},
		{name: "escape closing bracket", id: "weird]id", want: "[weird]]id]"},
		{name: "multiple closing brackets", id: "a]]b]", want: "[a]]]]b]]]"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := quoteIdent(tt.id); got != tt.want {
				t.Fatalf("quoteIdent(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

// TestQuoteFQN verifies splitting and quoting of schema-qualified names.
func TestQuoteFQN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{in: "author", want: "[author]"},
		{in: "dbo.author", want: "[dbo].[author]"},
		{in: " dbo . author ", want: "[dbo].[author]"},
		{in: "a..b", want: "[a].[b]"},
	}
	for _, tt := range tests {
		if got := quoteFQN(tt.in); got != tt.want {
			t.Fatalf("quoteFQN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildCreateTableSQL(t *testing.T) {
	t.Parallel()

	def := gddl.TableDef{
		FQN: "author",
		Columns: []gddl.ColumnDef{
			{Name: "id", SQLType: "INTEGER", PrimaryKey: true, AutoIncrement: true},
			{Name: "age", SQLType: "INTEGER", Nullable: true},
			{Name: "name", SQLType: "TEXT", Nullable: true},
		},
	}

	got, err := BuildCreateTableSQL(def)
	if err != nil {
		t.Fatalf("BuildCreateTableSQL() error = %v", err)
	}
	want := "IF OBJECT_ID(N'[author]', N'U') IS NULL CREATE TABLE [author] ([id] BIGINT IDENTITY(1,1) PRIMARY KEY, [age] BIGINT, [name] NVARCHAR(MAX));"
	if got != want {
		t.Fatalf("BuildCreateTableSQL() =\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildCreateTableSQLErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		def     gddl.TableDef
		wantErr string
	}{
		{name: "empty fqn", def: gddl.TableDef{Columns: []gddl.ColumnDef{{Name: "id", SQLType: "INTEGER"}}}, wantErr: "FQN must not be empty"},
		{name: "no columns", def: gddl.TableDef{FQN: "t"}, wantErr: "at least one column"},
		{name: "empty column name", def: gddl.TableDef{FQN: "t", Columns: []gddl.ColumnDef{{SQLType: "TEXT"}}}, wantErr: "empty name"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := BuildCreateTableSQL(tt.def)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("BuildCreateTableSQL() error = %v, want substring %q", err, tt.wantErr)
			}
			if !strings.HasPrefix(err.Error(), "mssql ddl:") {
				t.Fatalf("error %q missing mssql prefix", err)
			}
		})
	}
}
