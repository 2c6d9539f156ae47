package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/ordo/internal/models"
	"github.com/thenoetrevino/ordo/internal/position"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates a file-backed database in a temp dir and runs the
// migrations. The default columns are seeded.
func setupTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.db")
	db, err := InitDB(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Failed to init test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, path
}

// setupTestRepo returns a repository over a fresh database with the default
// columns removed.
func setupTestRepo(t *testing.T) (*Repository, *sql.DB) {
	t.Helper()
	db, _ := setupTestDB(t)
	if _, err := db.Exec("DELETE FROM columns"); err != nil {
		t.Fatalf("Failed to clear columns: %v", err)
	}
	return NewRepository(db, position.NewEngine(db)), db
}

func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }

func createColumns(t *testing.T, repo *Repository, titles ...string) []*models.Column {
	t.Helper()
	var cols []*models.Column
	for _, title := range titles {
		col, err := repo.Columns.Create(context.Background(), title, nil)
		if err != nil {
			t.Fatalf("Failed to create column %q: %v", title, err)
		}
		cols = append(cols, col)
	}
	return cols
}

func createTasks(t *testing.T, repo *Repository, columnID int, titles ...string) []*models.Task {
	t.Helper()
	var tasks []*models.Task
	for _, title := range titles {
		task, err := repo.Tasks.Create(context.Background(), title, "", columnID, nil)
		if err != nil {
			t.Fatalf("Failed to create task %q: %v", title, err)
		}
		tasks = append(tasks, task)
	}
	return tasks
}

func columnTitles(t *testing.T, repo *Repository) []string {
	t.Helper()
	cols, err := repo.Columns.GetAll(context.Background())
	if err != nil {
		t.Fatalf("Failed to get columns: %v", err)
	}
	out := []string{}
	for i, c := range cols {
		if c.Position != i {
			t.Fatalf("Column %q at index %d has position %d", c.Title, i, c.Position)
		}
		out = append(out, c.Title)
	}
	return out
}

func taskTitles(t *testing.T, repo *Repository, columnID int) []string {
	t.Helper()
	tasks, err := repo.Tasks.GetByColumn(context.Background(), columnID)
	if err != nil {
		t.Fatalf("Failed to get tasks: %v", err)
	}
	out := []string{}
	for i, task := range tasks {
		if task.Position != i {
			t.Fatalf("Task %q at index %d has position %d", task.Title, i, task.Position)
		}
		out = append(out, task.Title)
	}
	return out
}

func assertOrder(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, got)
		}
	}
}
