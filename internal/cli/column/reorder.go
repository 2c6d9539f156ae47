package column

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ordo/internal/cli"
	columnservice "github.com/thenoetrevino/ordo/internal/services/column"
)

// ReorderCmd returns the column reorder subcommand
func ReorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reorder",
		Aliases: []string{"mv"},
		Short:   "Move a column to another position",
		Long: `Move a column to a new zero-based position. Only the columns between
the old and new positions shift.

Examples:
  # Make column 3 the first column
  ordo column reorder --id=3 --position=0
`,
		Args: cobra.NoArgs,
		RunE: runReorder,
	}

	// Required flags
	cmd.Flags().Int("id", 0, "Column ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().Int("position", 0, "New zero-based position (required)")
	if err := cmd.MarkFlagRequired("position"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runReorder(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	columnID, _ := cmd.Flags().GetInt("id")
	pos, _ := cmd.Flags().GetInt("position")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	column, err := cliInstance.App.ColumnService.ReorderColumn(ctx, columnservice.ReorderColumnRequest{
		ColumnID: columnID,
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

	fmt.Printf("✓ Column '%s' moved to position %d\n", column.Title, column.Position)
	return nil
}
