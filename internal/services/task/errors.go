package task

import (
	"errors"

	"github.com/thenoetrevino/ordo/internal/models"
)

// Task-related errors
var (
	// Validation errors
	ErrEmptyTitle         = errors.New("task title cannot be empty")
	ErrTitleTooLong       = errors.New("task title cannot exceed 200 characters")
	ErrDescriptionTooLong = errors.New("task description cannot exceed 2000 characters")
	ErrInvalidTaskID      = errors.New("invalid task ID")
	ErrInvalidColumnID    = errors.New("invalid column ID")
	ErrInvalidPosition    = errors.New("invalid position: must be >= 0")

	// Business logic errors
	ErrTaskNotFound   = models.ErrTaskNotFound
	ErrColumnNotFound = models.ErrColumnNotFound
)
