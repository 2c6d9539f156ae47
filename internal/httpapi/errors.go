package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/thenoetrevino/ordo/internal/models"
	"github.com/thenoetrevino/ordo/internal/position"
	columnservice "github.com/thenoetrevino/ordo/internal/services/column"
	taskservice "github.com/thenoetrevino/ordo/internal/services/task"
)

// RetryAfterSeconds is sent with 503 responses to contended writes
const RetryAfterSeconds = "1"

// errBadRequest marks malformed requests: bad JSON, missing fields, bad ids
var errBadRequest = errors.New("bad request")

var notFoundErrors = []error{
	models.ErrColumnNotFound,
	models.ErrTaskNotFound,
	position.ErrMemberNotFound,
}

var badRequestErrors = []error{
	errBadRequest,
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

type errorResponse struct {
	Detail string `json:"detail"`
}

// StatusFor maps a domain error onto its HTTP status
func StatusFor(err error) int {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	if errors.Is(err, position.ErrContention) || errors.Is(err, position.ErrStorageUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	detail := err.Error()

	switch status {
	case http.StatusServiceUnavailable:
		if errors.Is(err, position.ErrContention) {
			w.Header().Set("Retry-After", RetryAfterSeconds)
		}
		h.logger.Warn("request unavailable", "method", r.Method, "path", r.URL.Path, "error", err)
	case http.StatusInternalServerError:
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		detail = "internal server error"
	}

	writeJSON(w, status, errorResponse{Detail: detail})
}
