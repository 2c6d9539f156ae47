package cli

import "github.com/thenoetrevino/ordo/internal/models"

// ColumnJSON is the JSON shape of a column in command output
func ColumnJSON(c *models.Column) map[string]any {
	return map[string]any{
		"id":         c.ID,
		"title":      c.Title,
		"position":   c.Position,
		"created_at": c.CreatedAt,
	}
}

// TaskJSON is the JSON shape of a task in command output
func TaskJSON(t *models.Task) map[string]any {
	return map[string]any{
		"id":          t.ID,
		"title":       t.Title,
		"description": t.Description,
		"column_id":   t.ColumnID,
		"position":    t.Position,
		"created_at":  t.CreatedAt,
		"updated_at":  t.UpdatedAt,
	}
}

// TasksJSON converts a task list
func TasksJSON(tasks []*models.Task) []map[string]any {
	out := make([]map[string]any, len(tasks))
	for i, t := range tasks {
		out[i] = TaskJSON(t)
	}
	return out
}
