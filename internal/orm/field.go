package orm

import (
	"database/sql"
	"fmt"
)

// Field describes one declared field of a row type T: either a scalar Column
// or a ForeignKey to another table. Fields are built with Column and
// ForeignKey and passed to Define; a construction error is held until Define
// reports it.
type Field[T any] struct {
	name string
	kind Kind
	ref  Schema // non-nil for foreign keys

	value  func(row *T) (any, error)
	scan   func(row *T) (dest any, commit func())
	assign func(row *T, ref any)

	err error
}

// FieldInfo is the type-erased description of a declared field.
type FieldInfo struct {
	Name   string // declared field name
	Column string // storage column: Name, or Name + "_id" for foreign keys
	Kind   Kind
	Ref    string // referenced table name for foreign keys
}

// Column declares a scalar field stored in column name. slot returns the
// address of the field inside a row; the native type V selects the storage
// kind (see KindOf).
func Column[T, V any](name string, slot func(row *T) *V) Field[T] {
	f := Field[T]{name: name}
	kind, err := KindOf[V]()
	if err != nil {
		f.err = fmt.Errorf("field %s: %w", name, err)
		return f
	}
	if slot == nil {
		f.err = fmt.Errorf("field %s: %w: nil slot", name, ErrInvalidName)
		return f
	}
	f.kind = kind

	f.value = func(row *T) (any, error) {
		return bindValue(*slot(row)), nil
	}
	f.scan = func(row *T) (any, func()) {
		n := new(sql.Null[V])
		return n, func() { *slot(row) = n.V }
	}
	return f
}

// ForeignKey declares a reference to a row of table ref. It is stored as
// column "<name>_id" holding the referenced row's id; slot returns the
// address of the *R field that holds the hydrated referenced row.
func ForeignKey[T, R any](name string, ref *Table[R], slot func(row *T) **R) Field[T] {
	f := Field[T]{name: name, kind: Integer}
	if ref == nil {
		f.err = fmt.Errorf("field %s: %w", name, ErrNilReference)
		return f
	}
	if slot == nil {
		f.err = fmt.Errorf("field %s: %w: nil slot", name, ErrInvalidName)
		return f
	}
	f.ref = ref

	f.value = func(row *T) (any, error) {
		r := *slot(row)
		if r == nil {
			return nil, fmt.Errorf("field %s: %w: nil %s", name, ErrUnsavedReference, ref.Name())
		}
		id := *ref.id(r)
		if id == 0 {
			return nil, fmt.Errorf("field %s: %w: %s has no id", name, ErrUnsavedReference, ref.Name())
		}
		return id, nil
	}
	f.assign = func(row *T, v any) {
		r, _ := v.(*R)
		*slot(row) = r
	}
	return f
}

// column is the storage column of the field.
func (f Field[T]) column() string {
	if f.ref != nil {
		return f.name + "_id"
	}
	return f.name
}

func (f Field[T]) info() FieldInfo {
	fi := FieldInfo{Name: f.name, Column: f.column(), Kind: f.kind}
	if f.ref != nil {
		fi.Ref = f.ref.Name()
	}
	return fi
}

// bindValue widens a column value to the driver.Value form every backend
// accepts: int64, float64, string or []byte. Booleans become 0/1.
func bindValue(v any) any {
	switch x := v.(type) {
	case bool:
		return boolInt(x)
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case float32:
		return float64(x)
	default:
		return v
	}
}
