package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/ordo/internal/models"
)

// schemaVersion is stored in PRAGMA user_version once the schema is applied.
const schemaVersion = 1

// runMigrations creates the database schema and seeds default data on a
// fresh database. Later runs leave the data alone, even if every column has
// since been deleted.
func runMigrations(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback migration", "error", err)
		}
	}()

	var version int
	if err := tx.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version >= schemaVersion {
		return nil
	}

	// Positions are dense per partition; the UNIQUE constraints are the
	// storage-level backstop for that.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS columns (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			position INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(position)
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT,
			column_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (column_id) REFERENCES columns(id) ON DELETE CASCADE,
			UNIQUE(column_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_column ON tasks(column_id)`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	if err := seedDefaultColumns(ctx, tx); err != nil {
		return err
	}

	// PRAGMA does not take bind parameters
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}
	return nil
}

// seedDefaultColumns inserts default columns if the columns table is empty.
// Databases created before user_version was tracked may already hold columns.
func seedDefaultColumns(ctx context.Context, tx *sql.Tx) error {
	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM columns").Scan(&count); err != nil {
		return fmt.Errorf("failed to count columns: %w", err)
	}

	// If columns exist, don't seed
	if count > 0 {
		return nil
	}

	for pos, title := range models.DefaultColumns {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO columns (title, position) VALUES (?, ?)",
			title, pos,
		); err != nil {
			return fmt.Errorf("failed to seed column %q: %w", title, err)
		}
	}
	return nil
}
