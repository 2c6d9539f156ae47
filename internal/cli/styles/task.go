package styles

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/thenoetrevino/ordo/internal/models"
)

// Cache Glamour renderers by width to avoid expensive re-creation
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// RenderDescription renders a markdown description, falling back to the raw
// text when glamour fails
func RenderDescription(description string, width int) string {
	if description == "" {
		return EmptyStyle.Render("No description")
	}
	renderer, err := getRenderer(width)
	if err != nil {
		return description
	}
	rendered, err := renderer.Render(description)
	if err != nil {
		return description
	}
	return strings.TrimSpace(rendered)
}

// RenderTaskDetail renders the full task card
func RenderTaskDetail(task *models.TaskDetail) string {
	var content strings.Builder

	content.WriteString(TitleStyle.Render(task.Title))
	content.WriteString("\n")
	content.WriteString(SubtitleStyle.Render(fmt.Sprintf("Task #%d", task.ID)))
	content.WriteString("\n\n")

	field := func(label, value string) {
		content.WriteString(LabelStyle.Render(label+":") + " " + ValueStyle.Render(value) + "\n")
	}
	field("Column", task.ColumnTitle)
	field("Position", fmt.Sprintf("%d", task.Position))
	field("Created", task.CreatedAt.Format("2006-01-02 15:04"))
	field("Updated", task.UpdatedAt.Format("2006-01-02 15:04"))

	content.WriteString(SectionStyle.Render("Description"))
	content.WriteString("\n")
	content.WriteString(RenderDescription(task.Description, CardWidth-6))

	return RenderCard(content.String())
}
