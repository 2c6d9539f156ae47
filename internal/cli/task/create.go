package task

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ordo/internal/cli"
	taskservice "github.com/thenoetrevino/ordo/internal/services/task"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"add"},
		Short:   "Create a new task",
		Long: `Create a new task in a column. The column may be given by ID or title.

Examples:
  # Append to the Todo column
  ordo task create --title="Fix login" --column=Todo

  # Put it at the top with a markdown description
  ordo task create --title="Fix login" --column=1 --position=0 \
    --description="Users on **Safari** cannot log in"

  # Quiet mode for bash capture
  TASK_ID=$(ordo task create --title="Fix login" --column=Todo --quiet)
`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	// Required flags
	cmd.Flags().String("title", "", "Task title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().String("column", "", "Column ID or title (required)")
	if err := cmd.MarkFlagRequired("column"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	// Optional flags
	cmd.Flags().String("description", "", "Task description (markdown)")
	cmd.Flags().Int("position", 0, "Zero-based position in the column (default: append)")

	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	columnRef, _ := cmd.Flags().GetString("column")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	column, err := cliInstance.ResolveColumn(ctx, columnRef)
	if err != nil {
		return failColumn(ctx, formatter, cliInstance, err)
	}

	task, err := cliInstance.App.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{
		Title:       title,
		Description: description,
		ColumnID:    column.ID,
		Position:    cli.OptionalInt(cmd, "position"),
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

	fmt.Printf("✓ Task '%s' created successfully (ID: %d)\n", task.Title, task.ID)
	fmt.Printf("  Column: %s, position %d\n", column.Title, task.Position)
	return nil
}
