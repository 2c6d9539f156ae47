package styles

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/ordo/internal/models"
)

// RenderBoard lays the columns out side by side, tasks in position order
func RenderBoard(board []*models.BoardColumn) string {
	if len(board) == 0 {
		return EmptyStyle.Render("No columns")
	}

	columns := make([]string, len(board))
	for i, bc := range board {
		columns[i] = renderColumn(bc)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func renderColumn(bc *models.BoardColumn) string {
	header := ColumnHeaderStyle.Render(fmt.Sprintf("%s (%d)", bc.Column.Title, len(bc.Tasks)))
	parts := []string{header}

	if len(bc.Tasks) == 0 {
		parts = append(parts, EmptyStyle.Render("No tasks"))
	}
	for _, task := range bc.Tasks {
		parts = append(parts, renderTask(task))
	}

	return ColumnStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func renderTask(task *models.Task) string {
	id := SubtitleStyle.Render(fmt.Sprintf("#%d", task.ID))
	return TaskStyle.Render(id + " " + ValueStyle.Render(task.Title))
}
