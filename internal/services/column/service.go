package column

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/ordo/internal/database"
	"github.com/thenoetrevino/ordo/internal/models"
	"github.com/thenoetrevino/ordo/internal/retry"
)

// Service defines all column-related business operations
type Service interface {
	// Read operations
	GetColumns(ctx context.Context) ([]*models.Column, error)
	GetColumnByID(ctx context.Context, id int) (*models.Column, error)

	// Write operations
	CreateColumn(ctx context.Context, req CreateColumnRequest) (*models.Column, error)
	UpdateColumn(ctx context.Context, req UpdateColumnRequest) (*models.Column, error)
	ReorderColumn(ctx context.Context, req ReorderColumnRequest) (*models.Column, error)
	DeleteColumn(ctx context.Context, id int) error
}

// CreateColumnRequest encapsulates data for creating a column
type CreateColumnRequest struct {
	Title    string
	Position *int // Optional: nil or models.AppendPosition appends to the board
}

// UpdateColumnRequest encapsulates data for updating a column
// Fields with pointers are optional - nil means don't update
type UpdateColumnRequest struct {
	ColumnID int
	Title    *string
	Position *int
}

// ReorderColumnRequest moves a column to a new slot on the board
type ReorderColumnRequest struct {
	ColumnID int
	Position int
}

// service implements Service on top of the column repository
type service struct {
	repo   database.ColumnRepository
	policy retry.Policy
	logger *slog.Logger
}

// NewService creates a new column service. Operations that lose a lock race
// are retried according to policy.
func NewService(repo database.ColumnRepository, policy retry.Policy, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		repo:   repo,
		policy: policy,
		logger: logger,
	}
}

// GetColumns retrieves every column in board order
func (s *service) GetColumns(ctx context.Context) ([]*models.Column, error) {
	return s.repo.GetAll(ctx)
}

// GetColumnByID retrieves a specific column
func (s *service) GetColumnByID(ctx context.Context, id int) (*models.Column, error) {
	if id <= 0 {
		return nil, ErrInvalidColumnID
	}
	return s.repo.GetByID(ctx, id)
}

// CreateColumn validates the request and inserts the column at the requested
// slot, shifting the columns behind it
func (s *service) CreateColumn(ctx context.Context, req CreateColumnRequest) (*models.Column, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}
	if err := validateSlot(req.Position); err != nil {
		return nil, err
	}

	column, err := retry.Do(ctx, s.policy, s.logger, func() (*models.Column, error) {
		return s.repo.Create(ctx, req.Title, req.Position)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("column created", "id", column.ID, "position", column.Position)
	return column, nil
}

// UpdateColumn renames and/or reorders a column in one transaction
func (s *service) UpdateColumn(ctx context.Context, req UpdateColumnRequest) (*models.Column, error) {
	if req.ColumnID <= 0 {
		return nil, ErrInvalidColumnID
	}
	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Position != nil && *req.Position < 0 {
		return nil, ErrInvalidPosition
	}

	return retry.Do(ctx, s.policy, s.logger, func() (*models.Column, error) {
		return s.repo.Update(ctx, req.ColumnID, req.Title, req.Position)
	})
}

// ReorderColumn moves a column to a new slot on the board
func (s *service) ReorderColumn(ctx context.Context, req ReorderColumnRequest) (*models.Column, error) {
	if req.ColumnID <= 0 {
		return nil, ErrInvalidColumnID
	}
	if req.Position < 0 {
		return nil, ErrInvalidPosition
	}

	return retry.Do(ctx, s.policy, s.logger, func() (*models.Column, error) {
		return s.repo.Reorder(ctx, req.ColumnID, req.Position)
	})
}

// DeleteColumn deletes a column together with its tasks
func (s *service) DeleteColumn(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidColumnID
	}

	err := retry.Run(ctx, s.policy, s.logger, func() error {
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("column deleted", "id", id)
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

func validateSlot(pos *int) error {
	if pos != nil && *pos < 0 && *pos != models.AppendPosition {
		return ErrInvalidPosition
	}
	return nil
}
