package orm

import (
	"errors"
	"testing"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	type named int

	tests := []struct {
		name    string
		got     func() (Kind, error)
		want    Kind
		wantErr bool
	}{
		{name: "int", got: KindOf[int], want: Integer},
		{name: "int8", got: KindOf[int8], want: Integer},
		{name: "int64", got: KindOf[int64], want: Integer},
		{name: "uint32", got: KindOf[uint32], want: Integer},
		{name: "string", got: KindOf[string], want: Text},
		{name: "bool", got: KindOf[bool], want: Boolean},
		{name: "float32", got: KindOf[float32], want: Real},
		{name: "float64", got: KindOf[float64], want: Real},
		{name: "bytes", got: KindOf[[]byte], want: Blob},
		{name: "uint64 overflows", got: KindOf[uint64], wantErr: true},
		{name: "named type", got: KindOf[named], wantErr: true},
		{name: "struct", got: KindOf[struct{}], wantErr: true},
		{name: "pointer", got: KindOf[*string], wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.got()
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedType) {
					t.Fatalf("KindOf() error = %v, want ErrUnsupportedType", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("KindOf() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindSQLType(t *testing.T) {
	t.Parallel()

	tests := map[Kind]string{
		Integer: "INTEGER",
		Text:    "TEXT",
		Boolean: "INTEGER",
		Real:    "REAL",
		Blob:    "BLOB",
		Kind(0): "",
	}
	for k, want := range tests {
		if got := k.SQLType(); got != want {
			t.Fatalf("%v.SQLType() = %q, want %q", k, got, want)
		}
	}
	if got := Kind(42).String(); got != "Kind(42)" {
		t.Fatalf("Kind(42).String() = %q", got)
	}
}
