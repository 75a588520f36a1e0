package storage

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"strconv"
	"testing"

	"shelf/internal/ddl"
)

// fakeDialect renders nothing and records calls.
type fakeDialect struct {
	renderErr error
	renders   int
}

func (d *fakeDialect) Name() string           { return "fake" }
func (d *fakeDialect) Rebind(q string) string { return q }
func (d *fakeDialect) ListTablesSQL() string  { return "" }
func (d *fakeDialect) CreateTableSQL(ddl.TableDef) (string, error) {
	d.renders++
	return "", d.renderErr
}
func (d *fakeDialect) InsertReturningID(context.Context, Execer, string, []any) (int64, error) {
	return 0, nil
}

// fakeRepo is a minimal Repository implementation for tests.
type fakeRepo struct {
	dialect Dialect
	closed  bool
}

func (f *fakeRepo) DB() *sql.DB      { return nil }
func (f *fakeRepo) Dialect() Dialect { return f.dialect }
func (f *fakeRepo) Close()           { f.closed = true }

// TestRegisterAndNew_Success verifies that registering a backend enables New()
// to return the corresponding repository.
func TestRegisterAndNew_Success(t *testing.T) {
	t.Parallel()

	kind := "fake"
	Register(kind, func(ctx context.Context, cfg Config) (Repository, error) {
		return &fakeRepo{}, nil
	})

	repo, err := New(context.Background(), Config{Kind: kind})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if repo == nil {
		t.Fatalf("New returned nil repo")
	}

	found := false
	for _, k := range ListKinds() {
		if k == kind {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("registered kind %q not present in ListKinds: %v", kind, ListKinds())
	}
}

// TestNew_Unsupported verifies that unsupported kinds return a helpful error.
func TestNew_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), Config{Kind: "does-not-exist"})
	if err == nil {
		t.Fatalf("expected error for unsupported kind")
	}
	if got, want := err.Error(), "unsupported storage.kind=does-not-exist"; got != want {
		t.Fatalf("error = %q, want %q", got, want)
	}
}

// TestRegister_Override verifies that re-registering a kind overrides the
// previous factory.
func TestRegister_Override(t *testing.T) {
	t.Parallel()

	kind := "override"
	calls := 0

	Register(kind, func(ctx context.Context, cfg Config) (Repository, error) {
		calls++
		return &fakeRepo{}, nil
	})
	Register(kind, func(ctx context.Context, cfg Config) (Repository, error) {
		calls += 10
		return &fakeRepo{}, nil
	})

	if _, err := New(context.Background(), Config{Kind: kind}); err != nil {
		t.Fatalf("New error: %v", err)
	}
	if calls != 10 {
		t.Fatalf("factory call count = %d, want 10", calls)
	}
}

// TestListKinds_Snapshot checks that ListKinds returns a copy.
func TestListKinds_Snapshot(t *testing.T) {
	t.Parallel()

	Register("snap", func(ctx context.Context, cfg Config) (Repository, error) { return &fakeRepo{}, nil })

	a := ListKinds()
	if len(a) == 0 {
		t.Fatalf("ListKinds empty after registration")
	}
	a[0] = "mutated"

	b := ListKinds()
	if reflect.DeepEqual(a, b) {
		t.Fatalf("ListKinds returned same slice; want snapshot copy")
	}
}

// TestRegister_AllowsErrors shows factories can return errors that bubble up.
func TestRegister_AllowsErrors(t *testing.T) {
	t.Parallel()

	kind := "errkind"
	want := errors.New("boom")

	Register(kind, func(ctx context.Context, cfg Config) (Repository, error) {
		return nil, want
	})

	_, err := New(context.Background(), Config{Kind: kind})
	if !errors.Is(err, want) {
		t.Fatalf("want %v, got %v", want, err)
	}
}

// TestEnsureTablePropagatesRenderError verifies that a dialect render failure
// is returned before any SQL is executed.
func TestEnsureTablePropagatesRenderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("bad def")
	d := &fakeDialect{renderErr: boom}
	err := EnsureTable(context.Background(), &fakeRepo{dialect: d}, ddl.TableDef{FQN: "t"})
	if !errors.Is(err, boom) {
		t.Fatalf("EnsureTable() error = %v, want %v", err, boom)
	}
	if d.renders != 1 {
		t.Fatalf("CreateTableSQL called %d times, want 1", d.renders)
	}
}

func TestRebindWith(t *testing.T) {
	t.Parallel()

	dollar := func(n int) string { return "$" + strconv.Itoa(n) }
	tests := []struct {
		in, want string
	}{
		{"SELECT 1;", "SELECT 1;"},
		{"INSERT INTO a (x, y) VALUES (?, ?);", "INSERT INTO a (x, y) VALUES ($1, $2);"},
		{"UPDATE a SET x = ? WHERE id = ?;", "UPDATE a SET x = $1 WHERE id = $2;"},
	}
	for _, tt := range tests {
		if got := RebindWith(tt.in, dollar); got != tt.want {
			t.Errorf("RebindWith(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
