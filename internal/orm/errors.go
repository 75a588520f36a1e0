package orm

import "errors"

// Declaration errors, returned by Define and the field constructors.
var (
	ErrUnsupportedType = errors.New("orm: unsupported field type")
	ErrInvalidName     = errors.New("orm: invalid name")
	ErrDuplicateField  = errors.New("orm: duplicate field")
	ErrNilReference    = errors.New("orm: foreign key without table")
	ErrCyclicReference = errors.New("orm: cyclic foreign key")
	ErrNoIdentity      = errors.New("orm: row type does not embed orm.Model")
	ErrUnknownField    = errors.New("orm: unknown field")
)

// Store errors, returned by DB operations.
var (
	ErrNotFound         = errors.New("orm: not found")
	ErrUnsavedReference = errors.New("orm: reference is not saved")
	ErrUnsaved          = errors.New("orm: row is not saved")
	ErrPersisted        = errors.New("orm: row is already saved")
	ErrSchemaConflict   = errors.New("orm: conflicting definitions for table")
)
