package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/ordo/internal/database"
	"github.com/thenoetrevino/ordo/internal/models"
	"github.com/thenoetrevino/ordo/internal/retry"
)

// Service defines all task-related business operations
type Service interface {
	// Read operations
	GetTasks(ctx context.Context) ([]*models.Task, error)
	GetTasksByColumn(ctx context.Context, columnID int) ([]*models.Task, error)
	GetTaskByID(ctx context.Context, id int) (*models.Task, error)
	GetTaskDetail(ctx context.Context, id int) (*models.TaskDetail, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, id int) error

	// Task movements
	ReorderTask(ctx context.Context, req ReorderTaskRequest) (*models.Task, error)
	MoveTask(ctx context.Context, req MoveTaskRequest) (*models.Task, error)
}

// CreateTaskRequest encapsulates all data needed to create a task
type CreateTaskRequest struct {
	Title       string
	Description string
	ColumnID    int
	Position    *int // Optional: nil or models.AppendPosition appends to the column
}

// UpdateTaskRequest encapsulates all data needed to update a task
// Fields with pointers are optional - nil means don't update
type UpdateTaskRequest struct {
	TaskID      int
	Title       *string
	Description *string
	Position    *int
}

// ReorderTaskRequest moves a task to a new slot inside its column
type ReorderTaskRequest struct {
	TaskID   int
	Position int
}

// MoveTaskRequest moves a task into a column at a slot
type MoveTaskRequest struct {
	TaskID         int
	TargetColumnID int
	Position       int // models.AppendPosition appends to the target column
}

// service implements Service on top of the task and column repositories
type service struct {
	tasks   database.TaskRepository
	columns database.ColumnReader
	policy  retry.Policy
	logger  *slog.Logger
}

// NewService creates a new task service. Operations that lose a lock race are
// retried according to policy.
func NewService(tasks database.TaskRepository, columns database.ColumnReader, policy retry.Policy, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		tasks:   tasks,
		columns: columns,
		policy:  policy,
		logger:  logger,
	}
}

// GetTasks retrieves every task ordered by column and position
func (s *service) GetTasks(ctx context.Context) ([]*models.Task, error) {
	return s.tasks.GetAll(ctx)
}

// GetTasksByColumn retrieves the tasks of an existing column in order
func (s *service) GetTasksByColumn(ctx context.Context, columnID int) ([]*models.Task, error) {
	if columnID <= 0 {
		return nil, ErrInvalidColumnID
	}
	if err := s.requireColumn(ctx, columnID); err != nil {
		return nil, err
	}
	return s.tasks.GetByColumn(ctx, columnID)
}

// GetTaskByID retrieves a specific task
func (s *service) GetTaskByID(ctx context.Context, id int) (*models.Task, error) {
	if id <= 0 {
		return nil, ErrInvalidTaskID
	}
	return s.tasks.GetByID(ctx, id)
}

// GetTaskDetail retrieves a task with the title of its column
func (s *service) GetTaskDetail(ctx context.Context, id int) (*models.TaskDetail, error) {
	if id <= 0 {
		return nil, ErrInvalidTaskID
	}
	return s.tasks.GetDetail(ctx, id)
}

// CreateTask validates the request and inserts the task into its column,
// shifting the tasks behind it
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(req.Description); err != nil {
		return nil, err
	}
	if req.ColumnID <= 0 {
		return nil, ErrInvalidColumnID
	}
	if req.Position != nil && *req.Position < 0 && *req.Position != models.AppendPosition {
		return nil, ErrInvalidPosition
	}

	task, err := retry.Do(ctx, s.policy, s.logger, func() (*models.Task, error) {
		// The insert re-checks the column under the write lock
		if err := s.requireColumn(ctx, req.ColumnID); err != nil {
			return nil, err
		}
		return s.tasks.Create(ctx, req.Title, req.Description, req.ColumnID, req.Position)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task created", "id", task.ID, "column_id", task.ColumnID, "position", task.Position)
	return task, nil
}

// UpdateTask edits a task's fields and optionally reorders it within its
// column, all in one transaction
func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error) {
	if req.TaskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		if err := validateDescription(*req.Description); err != nil {
			return nil, err
		}
	}
	if req.Position != nil && *req.Position < 0 {
		return nil, ErrInvalidPosition
	}

	return retry.Do(ctx, s.policy, s.logger, func() (*models.Task, error) {
		return s.tasks.Update(ctx, req.TaskID, req.Title, req.Description, req.Position)
	})
}

// DeleteTask removes a task and closes the gap in its column
func (s *service) DeleteTask(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidTaskID
	}

	err := retry.Run(ctx, s.policy, s.logger, func() error {
		return s.tasks.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("task deleted", "id", id)
	return nil
}

// ReorderTask moves a task to a new slot inside its current column
func (s *service) ReorderTask(ctx context.Context, req ReorderTaskRequest) (*models.Task, error) {
	if req.TaskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if req.Position < 0 {
		return nil, ErrInvalidPosition
	}

	return retry.Do(ctx, s.policy, s.logger, func() (*models.Task, error) {
		return s.tasks.Reorder(ctx, req.TaskID, req.Position)
	})
}

// MoveTask transfers a task into the target column at the requested slot.
// The target column is checked on every attempt: a column deleted between
// the check and the move surfaces as contention and is caught on retry.
func (s *service) MoveTask(ctx context.Context, req MoveTaskRequest) (*models.Task, error) {
	if req.TaskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if req.TargetColumnID <= 0 {
		return nil, ErrInvalidColumnID
	}
	if req.Position < 0 && req.Position != models.AppendPosition {
		return nil, ErrInvalidPosition
	}

	task, err := retry.Do(ctx, s.policy, s.logger, func() (*models.Task, error) {
		if err := s.requireColumn(ctx, req.TargetColumnID); err != nil {
			return nil, err
		}
		return s.tasks.Move(ctx, req.TaskID, req.TargetColumnID, req.Position)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task moved", "id", task.ID, "column_id", task.ColumnID, "position", task.Position)
	return task, nil
}

func (s *service) requireColumn(ctx context.Context, columnID int) error {
	ok, err := s.columns.Exists(ctx, columnID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %d", ErrColumnNotFound, columnID)
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > models.MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > models.MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}
