package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/thenoetrevino/ordo/internal/position"
)

// Partition scopes of the board tables.
var (
	// ColumnScope orders every column in a single board-wide partition.
	ColumnScope = position.Scope{Table: "columns"}

	// TaskScope orders tasks per column and stamps updated_at on moves.
	TaskScope = position.Scope{Table: "tasks", PartitionColumn: "column_id", TouchColumn: "updated_at"}
)

// notFound rewrites a missing-member error from the engine into the domain
// sentinel, keeping both in the chain.
func notFound(err error, sentinel error, id int) error {
	if errors.Is(err, position.ErrMemberNotFound) || errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %d: %w", sentinel, id, err)
	}
	return err
}

// slot maps a nil position to an append.
func slot(pos *int) int {
	if pos == nil {
		return position.AtEnd
	}
	return *pos
}

// NullStringToString converts sql.NullString to string.
// Returns empty string if the value is not valid.
func NullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// NullTimeToTime converts sql.NullTime to time.Time.
// Returns zero time if the value is not valid.
func NullTimeToTime(nt sql.NullTime) time.Time {
	if nt.Valid {
		return nt.Time
	}
	return time.Time{}
}
