package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/thenoetrevino/ordo/internal/models"
)

// FindColumnByName finds a column by title, case-insensitively
func FindColumnByName(columns []*models.Column, name string) (*models.Column, error) {
	for _, col := range columns {
		if strings.EqualFold(col.Title, name) {
			return col, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", models.ErrColumnNotFound, name)
}

// FormatAvailableColumns lists column titles in board order
func FormatAvailableColumns(columns []*models.Column) string {
	titles := make([]string, len(columns))
	for i, col := range columns {
		titles[i] = col.Title
	}
	return strings.Join(titles, ", ")
}

// GetCurrentColumnName returns the title of column id, or "Unknown"
func GetCurrentColumnName(columns []*models.Column, id int) string {
	for _, col := range columns {
		if col.ID == id {
			return col.Title
		}
	}
	return "Unknown"
}

// ResolveColumn resolves a column reference given as an ID or a title
func (c *CLI) ResolveColumn(ctx context.Context, ref string) (*models.Column, error) {
	if id, err := strconv.Atoi(ref); err == nil {
		return c.App.ColumnService.GetColumnByID(ctx, id)
	}
	columns, err := c.App.ColumnService.GetColumns(ctx)
	if err != nil {
		return nil, err
	}
	return FindColumnByName(columns, ref)
}

// Confirm asks a yes/no question on out and reads the answer from in.
// Anything but y or yes is a no.
func Confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s (y/N): ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
