package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/ordo/internal/models"
	"github.com/thenoetrevino/ordo/internal/position"
)

// ============================================================================
// Task Operations
// ============================================================================

// TaskRepo handles all task-related database operations.
type TaskRepo struct {
	db     *sql.DB
	engine *position.Engine
}

// NewTaskRepo creates a task repository over db and engine.
func NewTaskRepo(db *sql.DB, engine *position.Engine) *TaskRepo {
	return &TaskRepo{db: db, engine: engine}
}

const taskColumns = `id, title, description, column_id, position, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	task := &models.Task{}
	var description sql.NullString
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&task.ID, &task.Title, &description, &task.ColumnID,
		&task.Position, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	task.Description = NullStringToString(description)
	task.CreatedAt = NullTimeToTime(createdAt)
	task.UpdatedAt = NullTimeToTime(updatedAt)
	return task, nil
}

func (r *TaskRepo) queryTasks(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task rows: %w", err)
	}
	return tasks, nil
}

// Create inserts a task at pos in its column, or appends it when pos is nil.
// The column is checked under the write lock, so a concurrent column delete
// surfaces as ErrColumnNotFound rather than a constraint failure.
func (r *TaskRepo) Create(ctx context.Context, title, description string, columnID int, pos *int) (*models.Task, error) {
	var task *models.Task
	_, err := r.engine.Insert(ctx, TaskScope, position.PartitionKey(columnID), slot(pos),
		func(ctx context.Context, tx *position.Tx, p int) (int64, error) {
			var one int
			err := tx.QueryRowContext(ctx, `SELECT 1 FROM columns WHERE id = ?`, columnID).Scan(&one)
			if errors.Is(err, sql.ErrNoRows) {
				return 0, fmt.Errorf("%w: %d", models.ErrColumnNotFound, columnID)
			}
			if err != nil {
				return 0, fmt.Errorf("checking column %d: %w", columnID, err)
			}

			res, err := tx.ExecContext(ctx,
				`INSERT INTO tasks (title, description, column_id, position) VALUES (?, ?, ?, ?)`,
				title, description, columnID, p,
			)
			if err != nil {
				return 0, fmt.Errorf("failed to insert task: %w", err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return 0, fmt.Errorf("failed to read task id: %w", err)
			}
			task, err = scanTask(tx.QueryRowContext(ctx,
				`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
			if err != nil {
				return 0, fmt.Errorf("failed to read task %d: %w", id, err)
			}
			return id, nil
		})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// GetAll retrieves every task ordered by column and position
func (r *TaskRepo) GetAll(ctx context.Context) ([]*models.Task, error) {
	return r.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY column_id, position`)
}

// GetByColumn retrieves all tasks for a specific column, ordered by position
func (r *TaskRepo) GetByColumn(ctx context.Context, columnID int) ([]*models.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE column_id = ? ORDER BY position`, columnID)
}

// GetByID retrieves a task by its ID
func (r *TaskRepo) GetByID(ctx context.Context, id int) (*models.Task, error) {
	task, err := scanTask(r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err, models.ErrTaskNotFound, id)
	}
	return task, nil
}

// GetDetail retrieves a task together with its column title
func (r *TaskRepo) GetDetail(ctx context.Context, id int) (*models.TaskDetail, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT t.id, t.title, t.description, t.column_id, t.position, t.created_at, t.updated_at, c.title
		FROM tasks t
		JOIN columns c ON c.id = t.column_id
		WHERE t.id = ?`, id)

	detail := &models.TaskDetail{}
	var description sql.NullString
	var createdAt, updatedAt sql.NullTime
	err := row.Scan(&detail.ID, &detail.Title, &description, &detail.ColumnID,
		&detail.Position, &createdAt, &updatedAt, &detail.ColumnTitle)
	if err != nil {
		return nil, notFound(err, models.ErrTaskNotFound, id)
	}
	detail.Description = NullStringToString(description)
	detail.CreatedAt = NullTimeToTime(createdAt)
	detail.UpdatedAt = NullTimeToTime(updatedAt)
	return detail, nil
}

// Update changes a task's fields and, when pos is set, reorders it within its
// column in the same transaction
func (r *TaskRepo) Update(ctx context.Context, id int, title, description *string, pos *int) (*models.Task, error) {
	var edit position.EditFunc
	if title != nil || description != nil {
		edit = func(ctx context.Context, tx *position.Tx) error {
			_, err := tx.ExecContext(ctx, `
				UPDATE tasks
				SET title = COALESCE(?, title),
				    description = COALESCE(?, description)
				WHERE id = ?`,
				title, description, id,
			)
			return err
		}
	}
	if _, err := r.engine.Edit(ctx, TaskScope, int64(id), pos, edit); err != nil {
		return nil, notFound(err, models.ErrTaskNotFound, id)
	}
	return r.GetByID(ctx, id)
}

// Reorder moves a task to pos within its current column
func (r *TaskRepo) Reorder(ctx context.Context, id, pos int) (*models.Task, error) {
	if _, err := r.engine.Reorder(ctx, TaskScope, int64(id), pos); err != nil {
		return nil, notFound(err, models.ErrTaskNotFound, id)
	}
	return r.GetByID(ctx, id)
}

// Move transfers a task into columnID at pos. Moving within the task's own
// column is a reorder.
func (r *TaskRepo) Move(ctx context.Context, id, columnID, pos int) (*models.Task, error) {
	if _, err := r.engine.Move(ctx, TaskScope, int64(id), position.PartitionKey(columnID), pos); err != nil {
		return nil, notFound(err, models.ErrTaskNotFound, id)
	}
	return r.GetByID(ctx, id)
}

// Delete removes a task and closes the gap in its column
func (r *TaskRepo) Delete(ctx context.Context, id int) error {
	if _, err := r.engine.Delete(ctx, TaskScope, int64(id)); err != nil {
		return notFound(err, models.ErrTaskNotFound, id)
	}
	return nil
}
