package models

import "time"

// Task represents a single task in a board column
type Task struct {
	ID          int
	Title       string
	Description string
	ColumnID    int
	Position    int // Zero-based slot within the column
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskDetail is a DTO for the full task view
// Carries the owning column title alongside the task
type TaskDetail struct {
	Task
	ColumnTitle string
}

// BoardColumn is a column together with its tasks in position order
type BoardColumn struct {
	Column *Column
	Tasks  []*Task
}
