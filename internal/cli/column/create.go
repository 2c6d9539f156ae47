package column

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ordo/internal/cli"
	columnservice "github.com/thenoetrevino/ordo/internal/services/column"
)

// CreateCmd returns the column create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"add"},
		Short:   "Create a new column",
		Long: `Create a new column on the board.

Columns after the new one shift right by one.

Examples:
  # Create column at the end (human-readable output)
  ordo column create --title="Review"

  # Insert as the first column
  ordo column create --title="Backlog" --position=0

  # Quiet mode for bash capture
  COLUMN_ID=$(ordo column create --title="Review" --quiet)
`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	// Required flags
	cmd.Flags().String("title", "", "Column title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	// Optional flags
	cmd.Flags().Int("position", 0, "Zero-based position (default: append to the end)")

	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	title, _ := cmd.Flags().GetString("title")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	column, err := cliInstance.App.ColumnService.CreateColumn(ctx, columnservice.CreateColumnRequest{
		Title:    title,
		Position: cli.OptionalInt(cmd, "position"),
	})
	if err != nil {
		return formatter.Fail(err)
	}

	// Output based on mode
	if formatter.Quiet {
		fmt.Printf("%d\n", column.ID)
		return nil
	}
	if formatter.JSON {
		return formatter.JSONResult("column", cli.ColumnJSON(column))
	}

	fmt.Printf("✓ Column '%s' created successfully (ID: %d, position %d)\n", column.Title, column.ID, column.Position)
	return nil
}
