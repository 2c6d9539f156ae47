package task

import (
	"context"
	"errors"

	"github.com/thenoetrevino/ordo/internal/cli"
	"github.com/thenoetrevino/ordo/internal/models"
)

// failColumn reports an unresolved column reference with the available
// columns as a suggestion
func failColumn(ctx context.Context, formatter *cli.OutputFormatter, c *cli.CLI, err error) error {
	if !errors.Is(err, models.ErrColumnNotFound) {
		return formatter.Fail(err)
	}
	columns, listErr := c.App.ColumnService.GetColumns(ctx)
	if listErr != nil {
		return formatter.Fail(err)
	}
	return formatter.FailWithSuggestion(err, "Available columns: "+cli.FormatAvailableColumns(columns))
}
