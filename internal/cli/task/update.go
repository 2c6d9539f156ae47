package task

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ordo/internal/cli"
	taskservice "github.com/thenoetrevino/ordo/internal/services/task"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "update",
		Aliases: []string{"edit"},
		Short:   "Edit a task and/or reposition it within its column",
		Long: `Change a task's title, description or position. All given changes are
applied in one transaction.

Examples:
  ordo task update --id=4 --title="Fix login on Safari"
  ordo task update --id=4 --description="" --position=0
`,
		Args: cobra.NoArgs,
		RunE: runUpdate,
	}

	// Required flags
	cmd.Flags().Int("id", 0, "Task ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	// Optional flags (at least one required)
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description (markdown)")
	cmd.Flags().Int("position", 0, "New zero-based position in the column")

	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	taskID, _ := cmd.Flags().GetInt("id")
	req := taskservice.UpdateTaskRequest{
		TaskID:      taskID,
		Title:       cli.OptionalString(cmd, "title"),
		Description: cli.OptionalString(cmd, "description"),
		Position:    cli.OptionalInt(cmd, "position"),
	}
	if req.Title == nil && req.Description == nil && req.Position == nil {
		return formatter.FailWithSuggestion(
			cli.Usagef("nothing to update"),
			"Pass --title, --description and/or --position")
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

	task, err := cliInstance.App.TaskService.UpdateTask(ctx, req)
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

	fmt.Printf("✓ Task %d updated: '%s' at position %d\n", task.ID, task.Title, task.Position)
	return nil
}
