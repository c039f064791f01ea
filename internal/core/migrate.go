// AngelaMos | 2026
// migrate.go

package core

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations
var migrationFS embed.FS

// Migrate applies every embedded migration for the database dialect that has
// not been recorded in schema_migrations. Each file runs in its own
// transaction together with its bookkeeping row.
func Migrate(ctx context.Context, db *Database) error {
	create := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL
		)`
	if _, err := db.DB.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	files, err := migrationFiles(db.Dialect)
	if err != nil {
		return err
	}

	var applied []string
	if err := db.DB.SelectContext(
		ctx,
		&applied,
		"SELECT version FROM schema_migrations",
	); err != nil {
		return fmt.Errorf("read schema_migrations: %w", err)
	}

	done := make(map[string]struct{}, len(applied))
	for _, v := range applied {
		done[v] = struct{}{}
	}

	for _, name := range files {
		version := strings.TrimSuffix(path.Base(name), ".sql")
		if _, ok := done[version]; ok {
			continue
		}

		body, err := migrationFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", version, err)
		}

		err = InTx(ctx, db.DB, func(tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, string(body)); err != nil {
				return fmt.Errorf("apply migration %s: %w", version, err)
			}
			_, err := tx.ExecContext(
				ctx,
				tx.Rebind("INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)"),
				version,
				Now(),
			)
			if err != nil {
				return fmt.Errorf("record migration %s: %w", version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		slog.Info("migration applied", "version", version, "dialect", db.Dialect)
	}

	return nil
}

func migrationFiles(dialect string) ([]string, error) {
	dir := path.Join("migrations", dialect)

	entries, err := fs.ReadDir(migrationFS, dir)
	if err != nil {
		return nil, fmt.Errorf("list migrations for %s: %w", dialect, err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		files = append(files, path.Join(dir, e.Name()))
	}
	sort.Strings(files)

	return files, nil
}
