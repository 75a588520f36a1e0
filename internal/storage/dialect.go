package storage

import (
	"context"
	"strings"
)

// RebindWith replaces each "?" in query with bind(n), n counting from 1.
// Generated statements never carry string literals, so no quoting state is
// tracked.
func RebindWith(query string, bind func(n int) string) string {
	if !strings.Contains(query, "?") {
		return query
	}
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			sb.WriteString(bind(n))
			continue
		}
		sb.WriteByte(query[i])
	}
	return sb.String()
}

// LastInsertID runs query with ExecContext and reports sql.Result.LastInsertId.
// Backends whose drivers support it (sqlite, mysql) use this directly.
func LastInsertID(ctx context.Context, db Execer, query string, args []any) (int64, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// QueryID runs query (which must yield a single identity column) and scans it.
// Backends without LastInsertId support (postgres, mssql) rewrite the INSERT
// to return the identity and use this.
func QueryID(ctx context.Context, db Execer, query string, args []any) (int64, error) {
	var id int64
	if err := db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
