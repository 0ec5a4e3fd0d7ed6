// Package archive keeps a queryable history of every scheduling run in a
// local SQLite database.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens (and creates if missing) the archive database at path and
// applies the schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create archive dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			generated_at DATETIME NOT NULL,
			start_sunday TEXT NOT NULL,
			weeks INTEGER NOT NULL,
			roster_size INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			item_count INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			due TEXT NOT NULL,
			deck TEXT NOT NULL,
			task_key TEXT NOT NULL,
			task TEXT NOT NULL,
			category TEXT NOT NULL,
			people_needed INTEGER NOT NULL,
			assigned TEXT NOT NULL,
			weight_total REAL NOT NULL,
			FOREIGN KEY(run_id) REFERENCES runs(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_run_items_run_id ON run_items(run_id);`,
		`CREATE INDEX IF NOT EXISTS idx_run_items_task_key ON run_items(task_key);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_start_sunday ON runs(start_sunday);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
