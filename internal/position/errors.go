package position

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Engine errors. Every operation fails with at most one of these, wrapped with
// context, and never with a partially applied shift.
var (
	// ErrMemberNotFound means the referenced id does not exist.
	ErrMemberNotFound = errors.New("member not found")

	// ErrInvalidPosition means the requested slot is outside the valid range
	// for the operation.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvalidPartition means a cross-partition move was requested on a
	// scope that only has one partition.
	ErrInvalidPartition = errors.New("scope has a single partition")

	// ErrContention means the transaction lost a lock race or timed out.
	// Retrying the whole operation is safe.
	ErrContention = errors.New("contention on partition store")

	// ErrStorageUnavailable means the underlying store cannot be reached.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNotDense is reported by Check when a partition has gaps or
	// duplicates.
	ErrNotDense = errors.New("positions are not dense")
)

// IsRetryable reports whether err may succeed if the operation is repeated.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrContention)
}

// classify maps driver and context failures onto the engine taxonomy.
// Errors already in the taxonomy pass through untouched.
func classify(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrMemberNotFound) ||
		errors.Is(err, ErrInvalidPosition) ||
		errors.Is(err, ErrInvalidPartition) ||
		errors.Is(err, ErrContention) ||
		errors.Is(err, ErrStorageUnavailable) {
		return err
	}

	switch ctxErr := ctx.Err(); {
	case errors.Is(ctxErr, context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrContention, err)
	case errors.Is(ctxErr, context.Canceled):
		return fmt.Errorf("%w: %v", ctxErr, err)
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return fmt.Errorf("%w: %w", ErrContention, err)
		case sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_IOERR, sqlite3.SQLITE_NOTADB,
			sqlite3.SQLITE_CORRUPT, sqlite3.SQLITE_FULL, sqlite3.SQLITE_READONLY,
			sqlite3.SQLITE_PERM:
			return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
		}
		// A parent row removed between validation and commit. The retry
		// re-validates and reports the missing parent properly.
		if sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
			return fmt.Errorf("%w: %w", ErrContention, err)
		}
	}

	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return err
}
