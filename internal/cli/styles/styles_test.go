package styles

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/ordo/internal/config"
	"github.com/thenoetrevino/ordo/internal/models"
)

func TestRenderBoard(t *testing.T) {
	board := []*models.BoardColumn{
		{
			Column: &models.Column{ID: 1, Title: "Todo"},
			Tasks: []*models.Task{
				{ID: 7, Title: "Write docs", ColumnID: 1},
				{ID: 8, Title: "Ship", ColumnID: 1, Position: 1},
			},
		},
		{Column: &models.Column{ID: 2, Title: "Done", Position: 1}},
	}

	out := ansi.Strip(RenderBoard(board))

	assert.Contains(t, out, "Todo (2)")
	assert.Contains(t, out, "Done (0)")
	assert.Contains(t, out, "#7 Write docs")
	assert.Contains(t, out, "No tasks")
	assert.Less(t, strings.Index(out, "Write docs"), strings.Index(out, "Ship"))

	// Columns sit side by side on the header line
	firstLine := strings.Split(out, "\n")[1]
	assert.Contains(t, firstLine, "Todo")
	assert.Contains(t, firstLine, "Done")
}

func TestRenderBoardEmpty(t *testing.T) {
	assert.Equal(t, "No columns", ansi.Strip(RenderBoard(nil)))
}

func TestRenderTaskDetail(t *testing.T) {
	detail := &models.TaskDetail{
		Task: models.Task{
			ID:        3,
			Title:     "Fix login",
			ColumnID:  1,
			Position:  2,
			CreatedAt: time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC),
			UpdatedAt: time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC),
		},
		ColumnTitle: "In Progress",
	}

	out := ansi.Strip(RenderTaskDetail(detail))
	assert.Contains(t, out, "Fix login")
	assert.Contains(t, out, "Task #3")
	assert.Contains(t, out, "Column: In Progress")
	assert.Contains(t, out, "Position: 2")
	assert.Contains(t, out, "No description")
}

func TestRenderDescriptionMarkdown(t *testing.T) {
	out := ansi.Strip(RenderDescription("# Heading\n\nsome **bold** text", 60))
	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "bold")
	assert.Equal(t, "plain", ansi.Strip(RenderDescription("plain", 60)))
}

func TestInitAppliesThemeDefaults(t *testing.T) {
	t.Cleanup(func() { Init(config.DefaultTheme()) })

	Init(config.Theme{Preset: "monochrome"})
	assert.Contains(t, ansi.Strip(RenderCard("hello")), "hello")
}
