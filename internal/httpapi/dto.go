package httpapi

import (
	"time"

	"github.com/thenoetrevino/ordo/internal/models"
)

// ColumnResponse is the wire form of a column. Position is exposed as order.
type ColumnResponse struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskResponse is the wire form of a task
type TaskResponse struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ColumnID    int       `json:"column_id"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BoardColumnResponse is a column with its tasks in order
type BoardColumnResponse struct {
	ColumnResponse
	Tasks []TaskResponse `json:"tasks"`
}

type columnCreateRequest struct {
	Title string `json:"title"`
	Order *int   `json:"order"`
}

type columnUpdateRequest struct {
	Title *string `json:"title"`
	Order *int    `json:"order"`
}

type columnReorderRequest struct {
	ColumnID *int `json:"column_id"`
	NewOrder *int `json:"new_order"`
}

type taskCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ColumnID    int    `json:"column_id"`
	Order       *int   `json:"order"`
}

type taskUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
}

type taskMoveRequest struct {
	TaskID         *int `json:"task_id"`
	TargetColumnID *int `json:"target_column_id"`
	NewOrder       *int `json:"new_order"`
}

type taskReorderRequest struct {
	TaskID   *int `json:"task_id"`
	NewOrder *int `json:"new_order"`
}

func toColumnResponse(c *models.Column) ColumnResponse {
	return ColumnResponse{ID: c.ID, Title: c.Title, Order: c.Position, CreatedAt: c.CreatedAt}
}

func toColumnResponses(cols []*models.Column) []ColumnResponse {
	out := make([]ColumnResponse, len(cols))
	for i, c := range cols {
		out[i] = toColumnResponse(c)
	}
	return out
}

func toTaskResponse(t *models.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		ColumnID:    t.ColumnID,
		Order:       t.Position,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskResponses(tasks []*models.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return out
}

func toBoardResponse(board []*models.BoardColumn) []BoardColumnResponse {
	out := make([]BoardColumnResponse, len(board))
	for i, bc := range board {
		out[i] = BoardColumnResponse{
			ColumnResponse: toColumnResponse(bc.Column),
			Tasks:          toTaskResponses(bc.Tasks),
		}
	}
	return out
}
