package orm

import (
	"context"
	"database/sql"
	"fmt"

	"shelf/internal/metrics"
)

// scanned is a row read from the store whose foreign keys are not yet
// resolved. refs holds one raw id per foreign key field, in field order.
type scanned[T any] struct {
	row  *T
	refs []sql.NullInt64
}

// get fetches and hydrates one row by id.
func (t *Table[T]) get(ctx context.Context, db *DB, id int64) (*T, error) {
	query, _ := t.SelectByIDStatement(id)
	rows, err := t.fetch(ctx, db, 1, query)
	if err != nil {
		return nil, fmt.Errorf("%s id=%d: %w", t.name, id, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s id=%d: %w", t.name, id, ErrNotFound)
	}
	return rows[0], nil
}

// fetch runs query, which must select t's columns in order, and returns up
// to limit hydrated rows (all rows when limit is 0).
//
// The result set is read completely and closed before any foreign key is
// resolved: the store has a single connection, and a nested query issued
// while rows are still open would wait on it forever.
func (t *Table[T]) fetch(ctx context.Context, db *DB, limit int, query string, args ...any) ([]*T, error) {
	rs, err := db.repo.DB().QueryContext(ctx, db.dialect.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	var pending []scanned[T]
	for rs.Next() {
		s, err := t.scan(rs)
		if err != nil {
			rs.Close()
			return nil, err
		}
		pending = append(pending, s)
		if limit > 0 && len(pending) == limit {
			break
		}
	}
	if err := rs.Err(); err != nil {
		rs.Close()
		return nil, err
	}
	if err := rs.Close(); err != nil {
		return nil, err
	}

	out := make([]*T, 0, len(pending))
	for _, s := range pending {
		if err := t.resolve(ctx, db, s); err != nil {
			return nil, err
		}
		out = append(out, s.row)
	}
	metrics.RecordRows(t.name, "hydrated", int64(len(out)))
	return out, nil
}

// scan reads the current row of rs into a new *T.
func (t *Table[T]) scan(rs *sql.Rows) (scanned[T], error) {
	s := scanned[T]{row: new(T)}
	dests := make([]any, 0, len(t.columns))
	dests = append(dests, t.id(s.row))

	var commits []func()
	s.refs = make([]sql.NullInt64, t.foreignKeys())
	k := 0
	for _, f := range t.fields {
		if f.ref != nil {
			dests = append(dests, &s.refs[k])
			k++
			continue
		}
		dest, commit := f.scan(s.row)
		dests = append(dests, dest)
		commits = append(commits, commit)
	}

	if err := rs.Scan(dests...); err != nil {
		return s, fmt.Errorf("scan %s: %w", t.name, err)
	}
	for _, c := range commits {
		c()
	}
	return s, nil
}

// resolve replaces the raw foreign key ids of s with rows fetched from the
// referenced tables. A NULL id leaves the reference nil.
func (t *Table[T]) resolve(ctx context.Context, db *DB, s scanned[T]) error {
	k := 0
	for _, f := range t.fields {
		if f.ref == nil {
			continue
		}
		raw := s.refs[k]
		k++
		if !raw.Valid {
			continue
		}
		ref, err := f.ref.load(ctx, db, raw.Int64)
		if err != nil {
			return fmt.Errorf("resolve %s.%s: %w", t.name, f.name, err)
		}
		f.assign(s.row, ref)
	}
	return nil
}

func (t *Table[T]) foreignKeys() int {
	n := 0
	for _, f := range t.fields {
		if f.ref != nil {
			n++
		}
	}
	return n
}
