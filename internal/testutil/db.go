package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/ordo/internal/database"
)

// SetupTestDB creates a migrated database in a temp dir. Every connection to
// :memory: is a separate database, so the pool needs a file. The default
// columns (Todo, In Progress, Done) are seeded.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.db")
	db, err := database.InitDB(context.Background(), path, database.Options{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SetupEmptyTestDB is SetupTestDB without the default columns
func SetupEmptyTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := SetupTestDB(t)
	if _, err := db.ExecContext(context.Background(), "DELETE FROM columns"); err != nil {
		t.Fatalf("Failed to clear default columns: %v", err)
	}
	return db
}

// CreateTestColumn appends a column to the board and returns its ID
func CreateTestColumn(t *testing.T, db *sql.DB, title string) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO columns (title, position) VALUES (?, (SELECT COUNT(*) FROM columns))", title)
	if err != nil {
		t.Fatalf("Failed to create test column: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get column ID: %v", err)
	}
	return int(id)
}

// CreateTestTask appends a task to a column and returns its ID
func CreateTestTask(t *testing.T, db *sql.DB, columnID int, title string) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO tasks (title, description, column_id, position) VALUES (?, '', ?, (SELECT COUNT(*) FROM tasks WHERE column_id = ?))",
		title, columnID, columnID)
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get task ID: %v", err)
	}
	return int(id)
}

// ColumnIDByTitle looks up a seeded column
func ColumnIDByTitle(t *testing.T, db *sql.DB, title string) int {
	t.Helper()
	var id int
	if err := db.QueryRowContext(context.Background(), "SELECT id FROM columns WHERE title = ?", title).Scan(&id); err != nil {
		t.Fatalf("Failed to find column %q: %v", title, err)
	}
	return id
}

// TaskTitles returns the titles of a column's tasks in position order
func TaskTitles(t *testing.T, db *sql.DB, columnID int) []string {
	t.Helper()
	rows, err := db.QueryContext(context.Background(),
		"SELECT title FROM tasks WHERE column_id = ? ORDER BY position", columnID)
	if err != nil {
		t.Fatalf("Failed to query tasks: %v", err)
	}
	defer func() { _ = rows.Close() }()

	titles := []string{}
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			t.Fatalf("Failed to scan task title: %v", err)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Failed to iterate tasks: %v", err)
	}
	return titles
}

// ColumnTitles returns the board's column titles in position order
func ColumnTitles(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.QueryContext(context.Background(), "SELECT title FROM columns ORDER BY position")
	if err != nil {
		t.Fatalf("Failed to query columns: %v", err)
	}
	defer func() { _ = rows.Close() }()

	titles := []string{}
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			t.Fatalf("Failed to scan column title: %v", err)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Failed to iterate columns: %v", err)
	}
	return titles
}
