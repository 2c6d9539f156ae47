package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/thenoetrevino/ordo/internal/models"
	columnservice "github.com/thenoetrevino/ordo/internal/services/column"
)

// pathID parses a positive integer path value
func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil || id <= 0 {
		return 0, badRequest("%s must be a positive integer, got %q", name, r.PathValue(name))
	}
	return id, nil
}

// decode reads a JSON body into v. An empty body decodes to the zero value.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return badRequest("invalid JSON body: %v", err)
	}
	return nil
}

func required(name string, v *int) error {
	if v == nil {
		return badRequest("field %s is required", name)
	}
	return nonNegative(name, v)
}

// nonNegative rejects negative order values; -1 means append only inside
// the services
func nonNegative(name string, v *int) error {
	if v != nil && *v < 0 {
		return badRequest("field %s must be >= 0, got %d", name, *v)
	}
	return nil
}

func (h *handler) createColumn(w http.ResponseWriter, r *http.Request) {
	var req columnCreateRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := nonNegative("order", req.Order); err != nil {
		h.writeError(w, r, err)
		return
	}

	col, err := h.app.ColumnService.CreateColumn(r.Context(), columnservice.CreateColumnRequest{
		Title:    req.Title,
		Position: req.Order,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toColumnResponse(col))
}

func (h *handler) listColumns(w http.ResponseWriter, r *http.Request) {
	cols, err := h.app.ColumnService.GetColumns(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toColumnResponses(cols))
}

func (h *handler) getColumn(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	col, err := h.app.ColumnService.GetColumnByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toColumnResponse(col))
}

func (h *handler) updateColumn(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req columnUpdateRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := nonNegative("order", req.Order); err != nil {
		h.writeError(w, r, err)
		return
	}

	col, err := h.app.ColumnService.UpdateColumn(r.Context(), columnservice.UpdateColumnRequest{
		ColumnID: id,
		Title:    req.Title,
		Position: req.Order,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toColumnResponse(col))
}

func (h *handler) deleteColumn(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.app.ColumnService.DeleteColumn(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) reorderColumn(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req columnReorderRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := errors.Join(required("column_id", req.ColumnID), required("new_order", req.NewOrder)); err != nil {
		h.writeError(w, r, err)
		return
	}
	if *req.ColumnID != id {
		h.writeError(w, r, fmt.Errorf("%w: %d != %d", models.ErrIDMismatch, id, *req.ColumnID))
		return
	}

	col, err := h.app.ColumnService.ReorderColumn(r.Context(), columnservice.ReorderColumnRequest{
		ColumnID: id,
		Position: *req.NewOrder,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toColumnResponse(col))
}
