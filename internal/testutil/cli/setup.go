package cli

import (
	"database/sql"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/thenoetrevino/ordo/internal/app"
	"github.com/thenoetrevino/ordo/internal/retry"
	"github.com/thenoetrevino/ordo/internal/testutil"
)

// SetupCLITest creates a seeded test DB and returns both the DB and an App
// over it. This function is only for CLI tests and is isolated in a separate
// package to avoid import cycles when service tests import testutil.
func SetupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return db, app.New(db,
		app.WithRegistry(prometheus.NewRegistry()),
		app.WithRetryPolicy(retry.NoRetry()),
	)
}

// CreateTestColumn wraps testutil.CreateTestColumn for CLI tests
// Appends a column and returns its ID
func CreateTestColumn(t *testing.T, db *sql.DB, title string) int {
	t.Helper()
	return testutil.CreateTestColumn(t, db, title)
}

// CreateTestTask wraps testutil.CreateTestTask for CLI tests
// Appends a task to the column and returns its ID
func CreateTestTask(t *testing.T, db *sql.DB, columnID int, title string) int {
	t.Helper()
	return testutil.CreateTestTask(t, db, columnID, title)
}
