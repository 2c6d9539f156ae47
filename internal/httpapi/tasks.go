package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/thenoetrevino/ordo/internal/models"
	taskservice "github.com/thenoetrevino/ordo/internal/services/task"
)

func (h *handler) createTask(w http.ResponseWriter, r *http.Request) {
	var req taskCreateRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := nonNegative("order", req.Order); err != nil {
		h.writeError(w, r, err)
		return
	}

	task, err := h.app.TaskService.CreateTask(r.Context(), taskservice.CreateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		ColumnID:    req.ColumnID,
		Position:    req.Order,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(task))
}

func (h *handler) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.app.TaskService.GetTasks(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponses(tasks))
}

func (h *handler) listColumnTasks(w http.ResponseWriter, r *http.Request) {
	columnID, err := pathID(r, "column_id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	tasks, err := h.app.TaskService.GetTasksByColumn(r.Context(), columnID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponses(tasks))
}

func (h *handler) getTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	task, err := h.app.TaskService.GetTaskByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

func (h *handler) updateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req taskUpdateRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := nonNegative("order", req.Order); err != nil {
		h.writeError(w, r, err)
		return
	}

	task, err := h.app.TaskService.UpdateTask(r.Context(), taskservice.UpdateTaskRequest{
		TaskID:      id,
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Order,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

func (h *handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.app.TaskService.DeleteTask(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) moveTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req taskMoveRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	err = errors.Join(
		required("task_id", req.TaskID),
		required("target_column_id", req.TargetColumnID),
		required("new_order", req.NewOrder),
	)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if *req.TaskID != id {
		h.writeError(w, r, fmt.Errorf("%w: %d != %d", models.ErrIDMismatch, id, *req.TaskID))
		return
	}

	task, err := h.app.TaskService.MoveTask(r.Context(), taskservice.MoveTaskRequest{
		TaskID:         id,
		TargetColumnID: *req.TargetColumnID,
		Position:       *req.NewOrder,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

func (h *handler) reorderTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req taskReorderRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := errors.Join(required("task_id", req.TaskID), required("new_order", req.NewOrder)); err != nil {
		h.writeError(w, r, err)
		return
	}
	if *req.TaskID != id {
		h.writeError(w, r, fmt.Errorf("%w: %d != %d", models.ErrIDMismatch, id, *req.TaskID))
		return
	}

	task, err := h.app.TaskService.ReorderTask(r.Context(), taskservice.ReorderTaskRequest{
		TaskID:   id,
		Position: *req.NewOrder,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(task))
}
