package position

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

var (
	columnScope = Scope{Table: "columns"}
	taskScope   = Scope{Table: "tasks", PartitionColumn: "column_id", TouchColumn: "updated_at"}
)

// setupTestDB opens a file-backed database with the board schema. Each
// connection to :memory: would be its own database, so tests use a temp file.
func setupTestDB(t testing.TB) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "board.db")
	dsn := fmt.Sprintf("file:%s?_txlock=immediate&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
	CREATE TABLE columns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		position INTEGER NOT NULL,
		UNIQUE(position)
	);
	CREATE TABLE tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		column_id INTEGER NOT NULL REFERENCES columns(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(column_id, position)
	);`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return db
}

func insertColumn(title string) WriteFunc {
	return func(ctx context.Context, tx *Tx, pos int) (int64, error) {
		res, err := tx.ExecContext(ctx, `INSERT INTO columns (title, position) VALUES (?, ?)`, title, pos)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}
}

func insertTask(title string, columnID int64) WriteFunc {
	return func(ctx context.Context, tx *Tx, pos int) (int64, error) {
		res, err := tx.ExecContext(ctx, `INSERT INTO tasks (title, column_id, position) VALUES (?, ?, ?)`, title, columnID, pos)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}
}

func mustColumn(t testing.TB, e *Engine, title string) int64 {
	t.Helper()
	m, err := e.Insert(context.Background(), columnScope, TopLevel, AtEnd, insertColumn(title))
	if err != nil {
		t.Fatalf("Failed to insert column %q: %v", title, err)
	}
	return m.ID
}

func mustTask(t testing.TB, e *Engine, columnID int64, pos int, title string) int64 {
	t.Helper()
	m, err := e.Insert(context.Background(), taskScope, PartitionKey(columnID), pos, insertTask(title, columnID))
	if err != nil {
		t.Fatalf("Failed to insert task %q: %v", title, err)
	}
	return m.ID
}

// titles returns the titles of a task partition in position order.
func titles(t testing.TB, db *sql.DB, columnID int64) []string {
	t.Helper()
	rows, err := db.Query(`SELECT title FROM tasks WHERE column_id = ? ORDER BY position`, columnID)
	if err != nil {
		t.Fatalf("Failed to query titles: %v", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			t.Fatalf("Failed to scan title: %v", err)
		}
		out = append(out, s)
	}
	return out
}

func assertDense(t testing.TB, e *Engine, s Scope) {
	t.Helper()
	report, err := e.Check(context.Background(), s)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !report.OK() {
		t.Fatalf("Expected dense partitions in %s, got violations: %+v", s.Table, report.Violations)
	}
}

func assertTitles(t testing.TB, db *sql.DB, columnID int64, want ...string) {
	t.Helper()
	got := titles(t, db, columnID)
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, got)
		}
	}
}
