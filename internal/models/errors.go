package models

import "errors"

// Domain-specific errors shared across services
var (
	// ErrColumnNotFound indicates that the referenced column does not exist
	ErrColumnNotFound = errors.New("column not found")

	// ErrTaskNotFound indicates that the referenced task does not exist
	ErrTaskNotFound = errors.New("task not found")

	// ErrIDMismatch indicates that an id in a request path disagrees with the body
	ErrIDMismatch = errors.New("id in path must match id in request body")
)
