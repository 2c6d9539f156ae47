package models

import "time"

// Column represents a board column (e.g., "Todo", "In Progress", "Done")
// Columns are ordered by Position, which is dense across the whole board
type Column struct {
	ID        int    // Unique identifier for the column
	Title     string // Display name of the column
	Position  int    // Zero-based slot on the board
	CreatedAt time.Time
}

