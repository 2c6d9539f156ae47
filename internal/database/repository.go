package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/ordo/internal/models"
	"github.com/thenoetrevino/ordo/internal/position"
)

// Repository provides a unified interface to all data operations.
// It composes the column and task repositories over one engine.
type Repository struct {
	db      *sql.DB
	engine  *position.Engine
	Columns *ColumnRepo
	Tasks   *TaskRepo
}

// NewRepository creates a new Repository wrapping the given database
// connection and position engine.
func NewRepository(db *sql.DB, engine *position.Engine) *Repository {
	return &Repository{
		db:      db,
		engine:  engine,
		Columns: NewColumnRepo(db, engine),
		Tasks:   NewTaskRepo(db, engine),
	}
}

// GetBoard reads every column with its tasks in a single statement, so the
// result is one consistent snapshot.
func (r *Repository) GetBoard(ctx context.Context) ([]*models.BoardColumn, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.title, c.position, c.created_at,
		       t.id, t.title, t.description, t.position, t.created_at, t.updated_at
		FROM columns c
		LEFT JOIN tasks t ON t.column_id = c.id
		ORDER BY c.position, t.position`)
	if err != nil {
		return nil, fmt.Errorf("querying board: %w", err)
	}
	defer rows.Close()

	board := []*models.BoardColumn{}
	var current *models.BoardColumn
	for rows.Next() {
		col := &models.Column{}
		var colCreated sql.NullTime
		var taskID, taskPos sql.NullInt64
		var taskTitle, taskDesc sql.NullString
		var taskCreated, taskUpdated sql.NullTime
		if err := rows.Scan(&col.ID, &col.Title, &col.Position, &colCreated,
			&taskID, &taskTitle, &taskDesc, &taskPos, &taskCreated, &taskUpdated); err != nil {
			return nil, fmt.Errorf("scanning board row: %w", err)
		}

		if current == nil || current.Column.ID != col.ID {
			col.CreatedAt = NullTimeToTime(colCreated)
			current = &models.BoardColumn{Column: col, Tasks: []*models.Task{}}
			board = append(board, current)
		}
		if taskID.Valid {
			current.Tasks = append(current.Tasks, &models.Task{
				ID:          int(taskID.Int64),
				Title:       NullStringToString(taskTitle),
				Description: NullStringToString(taskDesc),
				ColumnID:    col.ID,
				Position:    int(taskPos.Int64),
				CreatedAt:   NullTimeToTime(taskCreated),
				UpdatedAt:   NullTimeToTime(taskUpdated),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating board rows: %w", err)
	}
	return board, nil
}

// Check verifies position density of columns and of every task partition.
func (r *Repository) Check(ctx context.Context) ([]position.Report, error) {
	var reports []position.Report
	for _, s := range []position.Scope{ColumnScope, TaskScope} {
		report, err := r.engine.Check(ctx, s)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// Repair compacts every partition that Check reports as not dense and returns
// the violations it fixed.
func (r *Repository) Repair(ctx context.Context) ([]position.Violation, error) {
	var fixed []position.Violation
	for _, s := range []position.Scope{ColumnScope, TaskScope} {
		report, err := r.engine.Check(ctx, s)
		if err != nil {
			return fixed, err
		}
		for _, v := range report.Violations {
			if err := r.engine.Compact(ctx, s, v.Partition); err != nil {
				return fixed, fmt.Errorf("failed to compact %s partition %d: %w", s.Table, v.Partition, err)
			}
			slog.Info("repaired partition", "table", s.Table, "partition", v.Partition)
			fixed = append(fixed, v)
		}
	}
	return fixed, nil
}
