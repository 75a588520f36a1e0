package orm

import (
	"fmt"
	"reflect"
)

// Kind is the storage kind of a column.
type Kind int

const (
	Integer Kind = iota + 1
	Text
	Boolean
	Real
	Blob
)

// SQLType returns the canonical column type. Booleans are stored as 0/1
// integers.
func (k Kind) SQLType() string {
	switch k {
	case Integer, Boolean:
		return "INTEGER"
	case Text:
		return "TEXT"
	case Real:
		return "REAL"
	case Blob:
		return "BLOB"
	default:
		return ""
	}
}

func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Text:
		return "text"
	case Boolean:
		return "boolean"
	case Real:
		return "real"
	case Blob:
		return "blob"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindOf reports the storage kind for the native type V. Only exact types are
// accepted; named types and unsigned types that may overflow int64 (uint,
// uint64) are rejected with ErrUnsupportedType.
func KindOf[V any]() (Kind, error) {
	switch any((*V)(nil)).(type) {
	case *int, *int8, *int16, *int32, *int64, *uint8, *uint16, *uint32:
		return Integer, nil
	case *string:
		return Text, nil
	case *bool:
		return Boolean, nil
	case *float32, *float64:
		return Real, nil
	case *[]byte:
		return Blob, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedType, reflect.TypeFor[V]())
	}
}
