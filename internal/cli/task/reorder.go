package task

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ordo/internal/cli"
	taskservice "github.com/thenoetrevino/ordo/internal/services/task"
)

// ReorderCmd returns the task reorder subcommand
func ReorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reorder",
		Aliases: []string{"mv"},
		Short:   "Move a task to another position in its column",
		Long: `Move a task to a new zero-based position within its column. Only the
tasks between the old and new positions shift.

Examples:
  # Move task 4 to the top of its column
  ordo task reorder --id=4 --position=0
`,
		Args: cobra.NoArgs,
		RunE: runReorder,
	}

	// Required flags
	cmd.Flags().Int("id", 0, "Task ID (required)")
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

	taskID, _ := cmd.Flags().GetInt("id")
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

	task, err := cliInstance.App.TaskService.ReorderTask(ctx, taskservice.ReorderTaskRequest{
		TaskID:   taskID,
		Position: pos,
	})
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		fmt.Printf("%d\n", task.ID)
		return nil
	}
	if formatter.JSON {
		return formatter.JSONResult("task", cli.TaskJSON(task))
	}

	fmt.Printf("✓ Task %d moved to position %d\n", task.ID, task.Position)
	return nil
}
