package task

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ordo/internal/cli"
	"github.com/thenoetrevino/ordo/internal/models"
	taskservice "github.com/thenoetrevino/ordo/internal/services/task"
)

var (
	errNoNextColumn = errors.New("task is already in the last column")
	errNoPrevColumn = errors.New("task is already in the first column")
)

// MoveCmd returns the task move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <next|prev|column>",
		Short: "Move a task to another column",
		Long: `Move a task to another column by direction, column title or column ID.
The task lands at the end of the target column unless --position is given.

Examples:
  # Move to next column
  ordo task move --id 1 next

  # Move to previous column
  ordo task move --id 1 prev

  # Move to specific column by title (case-insensitive), at the top
  ordo task move --id 1 "In Progress" --position 0
  ordo task move --id 1 done
`,
		RunE: runMove,
		Args: cobra.ExactArgs(1),
	}

	// Required flags
	cmd.Flags().Int("id", 0, "Task ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	// Optional flags
	cmd.Flags().Int("position", 0, "Zero-based position in the target column (default: append)")

	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	taskID, _ := cmd.Flags().GetInt("id")
	position := cli.OptionalInt(cmd, "position")
	target := args[0]

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	task, err := cliInstance.App.TaskService.GetTaskByID(ctx, taskID)
	if err != nil {
		return formatter.Fail(err)
	}

	columns, err := cliInstance.App.ColumnService.GetColumns(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	fromColumn := cli.GetCurrentColumnName(columns, task.ColumnID)

	var targetColumn *models.Column
	switch strings.ToLower(target) {
	case "next", "prev":
		targetColumn, err = adjacentColumn(columns, task.ColumnID, strings.ToLower(target) == "next")
		if err != nil {
			if fmtErr := formatter.Error("NO_ADJACENT_COLUMN", fmt.Sprintf("%v (%s)", err, fromColumn)); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			return &cli.CodedError{Code: cli.ExitValidation, Err: err}
		}
	default:
		targetColumn, err = cliInstance.ResolveColumn(ctx, target)
		if err != nil {
			return formatter.FailWithSuggestion(err, fmt.Sprintf("Task is currently in: %s\nAvailable columns: %s",
				fromColumn, cli.FormatAvailableColumns(columns)))
		}
	}

	// Already there and no position asked for: nothing to do
	if targetColumn.ID == task.ColumnID && position == nil {
		return printMoved(formatter, task, fromColumn, targetColumn.Title, false)
	}

	newPos := models.AppendPosition
	if position != nil {
		newPos = *position
	}
	moved, err := cliInstance.App.TaskService.MoveTask(ctx, taskservice.MoveTaskRequest{
		TaskID:         taskID,
		TargetColumnID: targetColumn.ID,
		Position:       newPos,
	})
	if err != nil {
		return formatter.Fail(err)
	}
	return printMoved(formatter, moved, fromColumn, targetColumn.Title, true)
}

func printMoved(formatter *cli.OutputFormatter, task *models.Task, from, to string, moved bool) error {
	if formatter.Quiet {
		fmt.Printf("%d\n", task.ID)
		return nil
	}

	if formatter.JSON {
		data := cli.TaskJSON(task)
		data["from_column"] = from
		data["to_column"] = to
		return formatter.JSONResult("task", data)
	}

	if !moved {
		fmt.Printf("Task %d is already in '%s'\n", task.ID, to)
		return nil
	}
	fmt.Printf("Task %d moved to '%s' at position %d\n", task.ID, to, task.Position)
	return nil
}

// adjacentColumn returns the column after (or before) currentID in board order
func adjacentColumn(columns []*models.Column, currentID int, next bool) (*models.Column, error) {
	for i, col := range columns {
		if col.ID != currentID {
			continue
		}
		switch {
		case next && i+1 < len(columns):
			return columns[i+1], nil
		case next:
			return nil, errNoNextColumn
		case i > 0:
			return columns[i-1], nil
		default:
			return nil, errNoPrevColumn
		}
	}
	return nil, fmt.Errorf("%w: %d", models.ErrColumnNotFound, currentID)
}
