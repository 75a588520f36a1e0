package storage

import (
	"context"
	"fmt"

	"shelf/internal/ddl"
)

// EnsureTable renders def with the repository's dialect and executes it.
// Dialects emit guarded DDL (IF NOT EXISTS or equivalent), so EnsureTable is
// safe to call repeatedly for the same table.
func EnsureTable(ctx context.Context, repo Repository, def ddl.TableDef) error {
	stmt, err := repo.Dialect().CreateTableSQL(def)
	if err != nil {
		return fmt.Errorf("render ddl for %s: %w", def.FQN, err)
	}
	if _, err := repo.DB().ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("%s: exec ddl for %s: %w", repo.Dialect().Name(), def.FQN, err)
	}
	return nil
}
