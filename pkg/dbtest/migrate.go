// Package dbtest prepares a live database for repository tests.
package dbtest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

// MigrateDir applies every *.sql file of dir in lexical order.
func MigrateDir(ctx context.Context, db *sqlx.DB, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("filepath.Glob: %w", err)
	}

	if len(files) == 0 {
		return fmt.Errorf("no migrations in %q", dir)
	}

	slices.Sort(files)

	return MigrateFromFile(ctx, db, files...)
}

// MigrateFromFile executes the files as is, one statement batch per file.
func MigrateFromFile(ctx context.Context, db *sqlx.DB, fileNames ...string) error {
	for _, fileName := range fileNames {
		query, err := os.ReadFile(fileName)
		if err != nil {
			return fmt.Errorf("os.ReadFile: %w", err)
		}

		if _, err = db.ExecContext(ctx, string(query)); err != nil {
			return fmt.Errorf("db.ExecContext(%s): %w", filepath.Base(fileName), err)
		}
	}

	return nil
}

// Truncate empties the tables between test cases.
func Truncate(ctx context.Context, db *sqlx.DB, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}

	if _, err := db.ExecContext(ctx, "TRUNCATE "+strings.Join(tables, ", ")); err != nil {
		return fmt.Errorf("db.ExecContext: %w", err)
	}

	return nil
}
