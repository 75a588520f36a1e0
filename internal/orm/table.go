package orm

import (
	"context"
	"fmt"
	"sort"
	"unicode"

	"github.com/zeebo/xxh3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"shelf/internal/ddl"
)

// Schema is the type-erased view of a Table. It is implemented only by
// *Table[T] and is what DB methods that do not need the row type accept.
type Schema interface {
	Name() string
	Fields() []FieldInfo
	Columns() []string
	CreateStatement() string
	SelectAllStatement() (string, []string)
	SelectByIDStatement(id int64) (string, []string)
	SelectByFieldStatement(field string) (string, []string, error)
	SelectByExactFieldStatement(field string, projection ...string) (string, error)
	DeleteStatement(id int64) string
	TableDef() ddl.TableDef
	Fingerprint() uint64

	references() []Schema
	load(ctx context.Context, db *DB, id int64) (any, error)
}

// Table is the definition of a stored row type T: its table name and its
// declared fields in column order.
type Table[T any] struct {
	name    string
	fields  []Field[T] // sorted by name
	columns []string   // "id" followed by field columns
	byName  map[string]int
	id      func(row *T) *int64

	create string
	fp     uint64
}

var _ Schema = (*Table[Model])(nil)

var lower = cases.Lower(language.Und)

// Define builds the table definition for T. typeName is the row type name;
// the table is named after it, NFC-normalised and lower-cased. Fields are
// ordered by name, with the implicit "id" column first.
//
// T must embed Model.
func Define[T any](typeName string, fields ...Field[T]) (*Table[T], error) {
	name := lower.String(norm.NFC.String(typeName))
	if !validIdent(name) {
		return nil, fmt.Errorf("define %q: %w: table name", typeName, ErrInvalidName)
	}
	if _, ok := any(new(T)).(identified); !ok {
		return nil, fmt.Errorf("define %s: %w", name, ErrNoIdentity)
	}

	t := &Table[T]{
		name:   name,
		fields: make([]Field[T], 0, len(fields)),
		byName: make(map[string]int, len(fields)),
		id:     func(row *T) *int64 { return any(row).(identified).PrimaryKey() },
	}

	seen := map[string]string{"id": "id"} // column -> field
	for _, f := range fields {
		if f.err != nil {
			return nil, fmt.Errorf("define %s: %w", name, f.err)
		}
		if !validIdent(f.name) {
			return nil, fmt.Errorf("define %s: %w: field %q", name, ErrInvalidName, f.name)
		}
		if f.name == "id" {
			return nil, fmt.Errorf("define %s: %w: field name id is reserved", name, ErrInvalidName)
		}
		if prev, ok := seen[f.column()]; ok {
			return nil, fmt.Errorf("define %s: %w: %s (column %s already used by %s)", name, ErrDuplicateField, f.name, f.column(), prev)
		}
		seen[f.column()] = f.name
		t.fields = append(t.fields, f)
	}

	sort.Slice(t.fields, func(i, j int) bool { return t.fields[i].name < t.fields[j].name })

	t.columns = make([]string, 0, len(t.fields)+1)
	t.columns = append(t.columns, "id")
	for i, f := range t.fields {
		t.byName[f.name] = i
		if f.ref != nil {
			t.byName[f.column()] = i
		}
		t.columns = append(t.columns, f.column())
	}

	if err := checkCycles(t); err != nil {
		return nil, fmt.Errorf("define %s: %w", name, err)
	}

	create, err := ddl.BuildCreateTableSQL(t.TableDef())
	if err != nil {
		return nil, fmt.Errorf("define %s: %w", name, err)
	}
	t.create = create
	t.fp = xxh3.HashString(create)
	return t, nil
}

// MustDefine is like Define but panics on error. It is meant for
// package-level table declarations.
func MustDefine[T any](typeName string, fields ...Field[T]) *Table[T] {
	t, err := Define(typeName, fields...)
	if err != nil {
		panic(err)
	}
	return t
}

// checkCycles walks the reference graph of t and fails when it leads back to
// a table with t's name.
func checkCycles(t Schema) error {
	var walk func(s Schema, path []string) error
	walk = func(s Schema, path []string) error {
		for _, ref := range s.references() {
			if ref.Name() == t.Name() {
				return fmt.Errorf("%w: %v -> %s", ErrCyclicReference, path, ref.Name())
			}
			if err := walk(ref, append(path, ref.Name())); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(t, []string{t.Name()})
}

// validIdent reports whether s is a letter or underscore followed by
// letters, digits and underscores.
func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// Name returns the table name.
func (t *Table[T]) Name() string { return t.name }

// Fields returns the declared fields in column order.
func (t *Table[T]) Fields() []FieldInfo {
	out := make([]FieldInfo, len(t.fields))
	for i, f := range t.fields {
		out[i] = f.info()
	}
	return out
}

// Columns returns every column name, "id" first.
func (t *Table[T]) Columns() []string {
	return append([]string(nil), t.columns...)
}

// CreateStatement returns the canonical CREATE TABLE IF NOT EXISTS text.
func (t *Table[T]) CreateStatement() string { return t.create }

// Fingerprint is a hash of the canonical create statement. Two definitions
// with the same name and fingerprint describe the same table.
func (t *Table[T]) Fingerprint() uint64 { return t.fp }

// TableDef returns the generic DDL model of the table, for dialect builders.
func (t *Table[T]) TableDef() ddl.TableDef {
	cols := make([]ddl.ColumnDef, 0, len(t.fields)+1)
	cols = append(cols, ddl.ColumnDef{Name: "id", SQLType: Integer.SQLType(), PrimaryKey: true, AutoIncrement: true})
	for _, f := range t.fields {
		cols = append(cols, ddl.ColumnDef{Name: f.column(), SQLType: f.kind.SQLType(), Nullable: true})
	}
	return ddl.TableDef{FQN: t.name, Columns: cols, IfNotExists: true}
}

// ID returns the identity of row, 0 when unsaved.
func (t *Table[T]) ID(row *T) int64 { return *t.id(row) }

func (t *Table[T]) references() []Schema {
	var refs []Schema
	for _, f := range t.fields {
		if f.ref != nil {
			refs = append(refs, f.ref)
		}
	}
	return refs
}

func (t *Table[T]) load(ctx context.Context, db *DB, id int64) (any, error) {
	return t.get(ctx, db, id)
}
