package database

import (
	"context"

	"github.com/thenoetrevino/ordo/internal/models"
	"github.com/thenoetrevino/ordo/internal/position"
)

// ColumnReader defines read operations for columns.
type ColumnReader interface {
	GetAll(ctx context.Context) ([]*models.Column, error)
	GetByID(ctx context.Context, id int) (*models.Column, error)
	Exists(ctx context.Context, id int) (bool, error)
}

// ColumnWriter defines write operations for columns. Every position change
// goes through the position engine.
type ColumnWriter interface {
	Create(ctx context.Context, title string, pos *int) (*models.Column, error)
	Update(ctx context.Context, id int, title *string, pos *int) (*models.Column, error)
	Reorder(ctx context.Context, id, pos int) (*models.Column, error)
	Delete(ctx context.Context, id int) error
}

// ColumnRepository combines all column-related operations.
type ColumnRepository interface {
	ColumnReader
	ColumnWriter
}

// TaskReader defines read operations for tasks.
type TaskReader interface {
	GetAll(ctx context.Context) ([]*models.Task, error)
	GetByID(ctx context.Context, id int) (*models.Task, error)
	GetByColumn(ctx context.Context, columnID int) ([]*models.Task, error)
	GetDetail(ctx context.Context, id int) (*models.TaskDetail, error)
}

// TaskWriter defines write operations for tasks.
type TaskWriter interface {
	Create(ctx context.Context, title, description string, columnID int, pos *int) (*models.Task, error)
	Update(ctx context.Context, id int, title, description *string, pos *int) (*models.Task, error)
	Reorder(ctx context.Context, id, pos int) (*models.Task, error)
	Move(ctx context.Context, id, columnID, pos int) (*models.Task, error)
	Delete(ctx context.Context, id int) error
}

// TaskRepository combines all task-related operations.
type TaskRepository interface {
	TaskReader
	TaskWriter
}

// BoardReader reads the whole board as one snapshot.
type BoardReader interface {
	GetBoard(ctx context.Context) ([]*models.BoardColumn, error)
}

// Maintainer verifies and repairs position density.
type Maintainer interface {
	Check(ctx context.Context) ([]position.Report, error)
	Repair(ctx context.Context) ([]position.Violation, error)
}
