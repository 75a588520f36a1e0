package ddl

import "testing"

// TestMapType verifies that MapType maps a variety of type names into the
// expected SQLite column types and falls back to TEXT.
func TestMapType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		kind string
		want string
	}{
		{name: "int lower", kind: "int", want: "INTEGER"},
		{name: "integer canonical", kind: "INTEGER", want: "INTEGER"},
		{name: "int mixed", kind: "  InTeGeR  ", want: "INTEGER"},
		{name: "bool", kind: "bool", want: "INTEGER"},
		{name: "boolean", kind: "BOOLEAN", want: "INTEGER"},
		{name: "float", kind: "float", want: "REAL"},
		{name: "real", kind: "REAL", want: "REAL"},
		{name: "blob", kind: "BLOB", want: "BLOB"},
		{name: "bytes", kind: "bytes", want: "BLOB"},
		{name: "text", kind: "TEXT", want: "TEXT"},
		{name: "empty", kind: "", want: "TEXT"},
		{name: "string", kind: "string", want: "TEXT"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := MapType(tt.kind); got != tt.want {
				t.Fatalf("MapType(%q) = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}
