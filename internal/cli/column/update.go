package column

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ordo/internal/cli"
	columnservice "github.com/thenoetrevino/ordo/internal/services/column"
)

// UpdateCmd returns the column update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "update",
		Aliases: []string{"edit", "rename"},
		Short:   "Rename and/or reposition a column",
		Long: `Change a column's title, position, or both in one transaction.

Examples:
  ordo column update --id=2 --title="Doing"
  ordo column update --id=2 --title="Doing" --position=0
`,
		Args: cobra.NoArgs,
		RunE: runUpdate,
	}

	// Required flags
	cmd.Flags().Int("id", 0, "Column ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	// Optional flags (at least one required)
	cmd.Flags().String("title", "", "New column title")
	cmd.Flags().Int("position", 0, "New zero-based position")

	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	columnID, _ := cmd.Flags().GetInt("id")
	title := cli.OptionalString(cmd, "title")
	pos := cli.OptionalInt(cmd, "position")

	if title == nil && pos == nil {
		return formatter.FailWithSuggestion(
			cli.Usagef("nothing to update"),
			"Pass --title and/or --position")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	column, err := cliInstance.App.ColumnService.UpdateColumn(ctx, columnservice.UpdateColumnRequest{
		ColumnID: columnID,
		Title:    title,
		Position: pos,
	})
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		fmt.Printf("%d\n", column.ID)
		return nil
	}
	if formatter.JSON {
		return formatter.JSONResult("column", cli.ColumnJSON(column))
	}

	fmt.Printf("✓ Column %d updated: '%s' at position %d\n", column.ID, column.Title, column.Position)
	return nil
}
