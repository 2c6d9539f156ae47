package column

import (
	"errors"

	"github.com/thenoetrevino/ordo/internal/models"
)

// Column-related errors
var (
	// Validation errors
	ErrEmptyTitle      = errors.New("column title cannot be empty")
	ErrTitleTooLong    = errors.New("column title cannot exceed 200 characters")
	ErrInvalidColumnID = errors.New("invalid column ID")
	ErrInvalidPosition = errors.New("invalid position: must be >= 0")

	// Business logic errors
	ErrColumnNotFound = models.ErrColumnNotFound
)
