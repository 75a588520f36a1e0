package orm

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"testing"

	"shelf/internal/storage"
	_ "shelf/internal/storage/sqlite"
)

type Author struct {
	Model
	Name string
	Age  int
}

type Book struct {
	Model
	Title     string
	Published bool
	Author    *Author
}

type Product struct {
	Model
	Name  string
	Price float64
}

var (
	authors = MustDefine("Author",
		Column("name", func(a *Author) *string { return &a.Name }),
		Column("age", func(a *Author) *int { return &a.Age }),
	)
	books = MustDefine("Book",
		Column("title", func(b *Book) *string { return &b.Title }),
		Column("published", func(b *Book) *bool { return &b.Published }),
		ForeignKey("author", authors, func(b *Book) **Author { return &b.Author }),
	)
	products = MustDefine("Product",
		Column("name", func(p *Product) *string { return &p.Name }),
		Column("price", func(p *Product) *float64 { return &p.Price }),
	)
)

// openTestDB opens a sqlite store in a fresh temporary file.
func openTestDB(t testing.TB) *DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "shelf.db")
	db, err := Open(context.Background(), storage.Config{Kind: "sqlite", DSN: dsn},
		WithLogger(log.New(io.Discard, "", 0)))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(db.Close)
	return db
}

// openWithTables opens a test store and creates the given tables.
func openWithTables(t testing.TB, schemas ...Schema) *DB {
	t.Helper()

	db := openTestDB(t)
	if err := db.CreateAll(context.Background(), schemas...); err != nil {
		t.Fatalf("CreateAll() error = %v", err)
	}
	return db
}
