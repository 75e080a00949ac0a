package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/cardbox/schemas"
)

// Migrate applies every embedded migration file in lexical order. The
// statements are idempotent, so re-running against an initialized database
// is safe.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	names, err := fs.Glob(schemas.Migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("fs.Glob() > %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := schemas.Migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("Migrations.ReadFile(%s) > %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("db.ExecContext(%s) > %w", name, err)
		}
		slog.Debug("applied migration", "file", name)
	}
	return nil
}
