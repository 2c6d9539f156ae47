package cli

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/ordo/internal/models"
	"github.com/thenoetrevino/ordo/internal/position"
	columnservice "github.com/thenoetrevino/ordo/internal/services/column"
	taskservice "github.com/thenoetrevino/ordo/internal/services/task"
)

// ErrUsage marks a command invoked with missing or conflicting arguments
var ErrUsage = errors.New("invalid usage")

// CodedError carries the process exit code for a failed command
type CodedError struct {
	Code int
	Err  error
}

func (e *CodedError) Error() string { return e.Err.Error() }

func (e *CodedError) Unwrap() error { return e.Err }

var notFoundErrors = []error{
	models.ErrColumnNotFound,
	models.ErrTaskNotFound,
	position.ErrMemberNotFound,
}

var validationErrors = []error{
	models.ErrIDMismatch,
	position.ErrInvalidPosition,
	position.ErrInvalidPartition,
	columnservice.ErrEmptyTitle,
	columnservice.ErrTitleTooLong,
	columnservice.ErrInvalidColumnID,
	columnservice.ErrInvalidPosition,
	taskservice.ErrEmptyTitle,
	taskservice.ErrTitleTooLong,
	taskservice.ErrDescriptionTooLong,
	taskservice.ErrInvalidTaskID,
	taskservice.ErrInvalidColumnID,
	taskservice.ErrInvalidPosition,
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ExitCodeFor maps an error returned by a command onto its exit code
func ExitCodeFor(err error) int {
	var exitErr *CodedError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case isAny(err, notFoundErrors):
		return ExitNotFound
	case errors.Is(err, position.ErrNotDense):
		return ExitDataErr
	case isAny(err, validationErrors):
		return ExitValidation
	default:
		return ExitError
	}
}

// ErrorCode returns the machine-readable code reported in JSON errors
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, models.ErrColumnNotFound):
		return "COLUMN_NOT_FOUND"
	case errors.Is(err, models.ErrTaskNotFound):
		return "TASK_NOT_FOUND"
	case errors.Is(err, position.ErrMemberNotFound):
		return "NOT_FOUND"
	case errors.Is(err, position.ErrInvalidPosition),
		errors.Is(err, columnservice.ErrInvalidPosition),
		errors.Is(err, taskservice.ErrInvalidPosition):
		return "INVALID_POSITION"
	case errors.Is(err, ErrUsage):
		return "USAGE_ERROR"
	case errors.Is(err, position.ErrNotDense):
		return "NOT_DENSE"
	case isAny(err, validationErrors):
		return "VALIDATION_ERROR"
	case errors.Is(err, position.ErrContention):
		return "CONTENTION"
	case errors.Is(err, position.ErrStorageUnavailable):
		return "STORAGE_UNAVAILABLE"
	default:
		return "ERROR"
	}
}

// Usagef returns an ErrUsage with a message
func Usagef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}
