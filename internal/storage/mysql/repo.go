// Package mysql implements a MySQL repository over database/sql using
// go-sql-driver/mysql, holding a single connection.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"shelf/internal/storage"
)

// Config holds MySQL repository configuration.
type Config struct {
	DSN string // e.g. user:pass@tcp(localhost:3306)/shelf
}

// Repository is a MySQL-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg Config
}

// NewRepository parses the DSN, opens one connection and returns a
// Repository plus a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("mysql: DSN must not be empty")
	}
	mcfg, err := mysql.ParseDSN(cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("mysql: parse dsn: %w", err)
	}
	// RowsAffected must count matched rows so an unchanged UPDATE is not
	// mistaken for a missing row.
	mcfg.ClientFoundRows = true
	connector, err := mysql.NewConnector(mcfg)
	if err != nil {
		return nil, nil, fmt.Errorf("mysql: connector: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("mysql: ping: %w", err)
	}
	closeFn := func() { _ = db.Close() }
	return &Repository{db: db, cfg: cfg}, closeFn, nil
}

// DB implements storage.Repository.
func (r *Repository) DB() *sql.DB { return r.db }

// Dialect implements storage.Repository.
func (r *Repository) Dialect() storage.Dialect { return Dialect{} }
