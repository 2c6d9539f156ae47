package column

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ordo/internal/cli"
)

// DeleteCmd returns the column delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"rm"},
		Short:   "Delete a column and its tasks",
		Long: `Delete a column by ID (requires confirmation unless --force, --json or --quiet).

Warning: Deleting a column also deletes every task in it. The columns after
it shift left to close the gap.

Examples:
  # Delete with confirmation
  ordo column delete --id=1

  # Skip confirmation
  ordo column delete --id=1 --force
`,
		Args: cobra.NoArgs,
		RunE: runDelete,
	}

	// Required flags
	cmd.Flags().Int("id", 0, "Column ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	// Optional flags
	cmd.Flags().Bool("force", false, "Skip confirmation")

	cli.AddOutputFlags(cmd, "Minimal output")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	columnID, _ := cmd.Flags().GetInt("id")
	force, _ := cmd.Flags().GetBool("force")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	// Get column details for confirmation
	column, err := cliInstance.App.ColumnService.GetColumnByID(ctx, columnID)
	if err != nil {
		return formatter.Fail(err)
	}

	// Ask for confirmation unless forced or driven by a script
	if !force && !formatter.Quiet && !formatter.JSON {
		tasks, err := cliInstance.App.TaskService.GetTasksByColumn(ctx, columnID)
		if err != nil {
			return formatter.Fail(err)
		}
		if len(tasks) > 0 {
			fmt.Printf("⚠ Warning: Deleting this column also deletes its %d task(s)\n", len(tasks))
		}
		if !cli.Confirm(cmd.InOrStdin(), os.Stdout, fmt.Sprintf("Delete column #%d: '%s'?", columnID, column.Title)) {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := cliInstance.App.ColumnService.DeleteColumn(ctx, columnID); err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.JSONResult("column_id", columnID)
	}

	fmt.Printf("✓ Column %d deleted successfully\n", columnID)
	return nil
}
