// Package orm maps explicitly declared row types onto tables of a single
// relational store.
//
// A row type is a plain struct embedding Model. Its table is declared once
// with Define, listing every stored field as a Column or a ForeignKey. The
// resulting *Table[T] renders all SQL text itself; a *DB executes it against
// a storage.Repository and hydrates results, resolving foreign keys by
// recursive fetch.
//
// A DB holds one connection. It is safe for concurrent use: statements from
// different goroutines queue on that connection. Operations honour ctx
// cancellation as far as the driver does; a statement aborted mid-flight
// leaves its outcome to the backend.
package orm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"shelf/internal/metrics"
	"shelf/internal/storage"
)

// DB is the store engine: one repository plus the dialect used to talk to it.
type DB struct {
	repo    storage.Repository
	dialect storage.Dialect
	logger  *log.Logger
}

// Option configures a DB.
type Option func(*DB)

// WithLogger sets the logger used for table creation and failed operations.
func WithLogger(l *log.Logger) Option {
	return func(db *DB) {
		if l != nil {
			db.logger = l
		}
	}
}

// Open opens the backend registered for cfg.Kind and returns a DB over it.
// Backends register themselves on import (see storage/all).
func Open(ctx context.Context, cfg storage.Config, opts ...Option) (*DB, error) {
	repo, err := storage.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("orm: open: %w", err)
	}
	return New(repo, opts...), nil
}

// New returns a DB over an open repository. Closing the DB closes repo.
func New(repo storage.Repository, opts ...Option) *DB {
	db := &DB{repo: repo, dialect: repo.Dialect(), logger: log.Default()}
	for _, o := range opts {
		o(db)
	}
	return db
}

// Close releases the underlying connection.
func (db *DB) Close() { db.repo.Close() }

// Dialect returns the backend dialect.
func (db *DB) Dialect() storage.Dialect { return db.dialect }

// observe records metrics for one operation and logs store failures.
func (db *DB) observe(table, op string, start time.Time, err error) {
	notFound := errors.Is(err, ErrNotFound)
	metrics.RecordOp(table, op, err, time.Since(start), notFound)
	if err != nil && !notFound {
		db.logger.Printf("orm: %s failed table=%s err=%v", op, table, err)
	}
}

// CreateTable creates the table for s if it does not exist.
func (db *DB) CreateTable(ctx context.Context, s Schema) (err error) {
	defer func(start time.Time) { db.observe(s.Name(), "create_table", start, err) }(time.Now())

	if err := storage.EnsureTable(ctx, db.repo, s.TableDef()); err != nil {
		return fmt.Errorf("orm: create table %s: %w", s.Name(), err)
	}
	db.logger.Printf("orm: table ready name=%s fingerprint=%016x backend=%s", s.Name(), s.Fingerprint(), db.dialect.Name())
	return nil
}

// CreateAll creates the tables for schemas and every table they reference,
// referenced tables first. A table reached through two definitions that
// differ fails with ErrSchemaConflict before anything is created.
func (db *DB) CreateAll(ctx context.Context, schemas ...Schema) error {
	var (
		order []Schema
		seen  = map[string]Schema{}
	)
	var visit func(s Schema) error
	visit = func(s Schema) error {
		if prev, ok := seen[s.Name()]; ok {
			if prev.Fingerprint() != s.Fingerprint() {
				return fmt.Errorf("orm: create all: %w: %s", ErrSchemaConflict, s.Name())
			}
			return nil
		}
		seen[s.Name()] = s
		for _, ref := range s.references() {
			if err := visit(ref); err != nil {
				return err
			}
		}
		order = append(order, s)
		return nil
	}
	for _, s := range schemas {
		if err := visit(s); err != nil {
			return err
		}
	}
	for _, s := range order {
		if err := db.CreateTable(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// Tables lists the user tables present in the store.
func (db *DB) Tables(ctx context.Context) ([]string, error) {
	rows, err := db.repo.DB().QueryContext(ctx, db.dialect.ListTablesSQL())
	if err != nil {
		return nil, fmt.Errorf("orm: tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("orm: tables: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orm: tables: %w", err)
	}
	return names, nil
}

// Delete removes the row with the given id. Deleting an id that does not
// exist succeeds.
func (db *DB) Delete(ctx context.Context, s Schema, id int64) (err error) {
	defer func(start time.Time) { db.observe(s.Name(), "delete", start, err) }(time.Now())

	res, err := db.repo.DB().ExecContext(ctx, s.DeleteStatement(id))
	if err != nil {
		return fmt.Errorf("orm: delete %s: %w", s.Name(), err)
	}
	if n, err := res.RowsAffected(); err == nil {
		metrics.RecordRows(s.Name(), "deleted", n)
	}
	return nil
}

// GetByExactField returns the raw column values of the first row whose field
// equals value, keyed by column name. Values are returned as the driver
// reports them; booleans come back as their stored 0/1 integer. No row
// yields ErrNotFound.
func (db *DB) GetByExactField(ctx context.Context, s Schema, field string, value any, projection ...string) (_ map[string]any, err error) {
	defer func(start time.Time) { db.observe(s.Name(), "get_by_exact_field", start, err) }(time.Now())

	query, err := s.SelectByExactFieldStatement(field, projection...)
	if err != nil {
		return nil, fmt.Errorf("orm: get by exact field: %w", err)
	}
	if b, ok := value.(bool); ok {
		value = boolInt(b)
	}

	rows, err := db.repo.DB().QueryContext(ctx, db.dialect.Rebind(query), value)
	if err != nil {
		return nil, fmt.Errorf("orm: get %s by %s: %w", s.Name(), field, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("orm: get %s by %s: %w", s.Name(), field, err)
	}
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("orm: get %s by %s: %w", s.Name(), field, err)
		}
		return nil, fmt.Errorf("orm: get %s by %s=%v: %w", s.Name(), field, value, ErrNotFound)
	}

	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("orm: get %s by %s: %w", s.Name(), field, err)
	}
	out := make(map[string]any, len(cols))
	for i, c := range cols {
		out[c] = vals[i]
	}
	return out, nil
}

// Save inserts row and sets its ID to the identity generated by the store.
// A row that already has an ID fails with ErrPersisted; a foreign key to an
// unsaved row fails with ErrUnsavedReference. Both are checked before any
// statement runs.
func Save[T any](ctx context.Context, db *DB, t *Table[T], row *T) (err error) {
	defer func(start time.Time) { db.observe(t.name, "save", start, err) }(time.Now())

	if id := *t.id(row); id != 0 {
		return fmt.Errorf("orm: save %s id=%d: %w", t.name, id, ErrPersisted)
	}
	query, args, err := t.InsertStatement(row)
	if err != nil {
		return fmt.Errorf("orm: save %w", err)
	}
	id, err := db.dialect.InsertReturningID(ctx, db.repo.DB(), db.dialect.Rebind(query), args)
	if err != nil {
		return fmt.Errorf("orm: save %s: %w", t.name, err)
	}
	*t.id(row) = id
	metrics.RecordRows(t.name, "inserted", 1)
	return nil
}

// Get returns the row with the given id, foreign keys hydrated. No row
// yields ErrNotFound.
func Get[T any](ctx context.Context, db *DB, t *Table[T], id int64) (_ *T, err error) {
	defer func(start time.Time) { db.observe(t.name, "get", start, err) }(time.Now())

	row, err := t.get(ctx, db, id)
	if err != nil {
		return nil, fmt.Errorf("orm: get %w", err)
	}
	return row, nil
}

// All returns every row of t in the store's natural order, foreign keys
// hydrated.
func All[T any](ctx context.Context, db *DB, t *Table[T]) (_ []*T, err error) {
	defer func(start time.Time) { db.observe(t.name, "all", start, err) }(time.Now())

	query, _ := t.SelectAllStatement()
	rows, err := t.fetch(ctx, db, 0, query)
	if err != nil {
		return nil, fmt.Errorf("orm: all %s: %w", t.name, err)
	}
	return rows, nil
}

// GetByField returns the first row whose field contains value (SQL LIKE
// '%value%'), foreign keys hydrated. No match yields ErrNotFound.
func GetByField[T any](ctx context.Context, db *DB, t *Table[T], field string, value any) (_ *T, err error) {
	defer func(start time.Time) { db.observe(t.name, "get_by_field", start, err) }(time.Now())

	query, _, err := t.SelectByFieldStatement(field)
	if err != nil {
		return nil, fmt.Errorf("orm: get by field: %w", err)
	}
	rows, err := t.fetch(ctx, db, 1, query, "%"+fmt.Sprint(value)+"%")
	if err != nil {
		return nil, fmt.Errorf("orm: get %s by %s: %w", t.name, field, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("orm: get %s by %s~%v: %w", t.name, field, value, ErrNotFound)
	}
	return rows[0], nil
}

// Update overwrites every field of the stored row with row's values. A row
// without an ID fails with ErrUnsaved; an ID with no stored row fails with
// ErrNotFound.
func Update[T any](ctx context.Context, db *DB, t *Table[T], row *T) (err error) {
	defer func(start time.Time) { db.observe(t.name, "update", start, err) }(time.Now())

	query, args, err := t.UpdateStatement(row)
	if err != nil {
		return fmt.Errorf("orm: update %w", err)
	}
	res, err := db.repo.DB().ExecContext(ctx, db.dialect.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("orm: update %s: %w", t.name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("orm: update %s: %w", t.name, err)
	}
	if n == 0 {
		return fmt.Errorf("orm: update %s id=%d: %w", t.name, *t.id(row), ErrNotFound)
	}
	metrics.RecordRows(t.name, "updated", n)
	return nil
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
