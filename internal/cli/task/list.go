package task

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ordo/internal/cli"
	"github.com/thenoetrevino/ordo/internal/models"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks in position order",
		Long: `List tasks grouped by column, or the tasks of one column.

Examples:
  ordo task list
  ordo task list --column="In Progress"
  ordo task list --column=2 --json
`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().String("column", "", "Only list tasks in this column (ID or title)")

	cli.AddOutputFlags(cmd, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

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

	var board []*models.BoardColumn
	if columnRef != "" {
		column, err := cliInstance.ResolveColumn(ctx, columnRef)
		if err != nil {
			return failColumn(ctx, formatter, cliInstance, err)
		}
		tasks, err := cliInstance.App.TaskService.GetTasksByColumn(ctx, column.ID)
		if err != nil {
			return formatter.Fail(err)
		}
		board = []*models.BoardColumn{{Column: column, Tasks: tasks}}
	} else {
		board, err = cliInstance.App.Board().GetBoard(ctx)
		if err != nil {
			return formatter.Fail(err)
		}
	}

	if formatter.Quiet {
		for _, bc := range board {
			for _, task := range bc.Tasks {
				fmt.Printf("%d\n", task.ID)
			}
		}
		return nil
	}

	if formatter.JSON {
		var tasks []*models.Task
		for _, bc := range board {
			tasks = append(tasks, bc.Tasks...)
		}
		return formatter.JSONResult("tasks", cli.TasksJSON(tasks))
	}

	for _, bc := range board {
		fmt.Printf("%s:\n", bc.Column.Title)
		if len(bc.Tasks) == 0 {
			fmt.Println("  (no tasks)")
			continue
		}
		for _, task := range bc.Tasks {
			fmt.Printf("  %d. %s (ID: %d)\n", task.Position, task.Title, task.ID)
		}
	}
	return nil
}
