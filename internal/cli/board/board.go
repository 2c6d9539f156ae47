// Package board implements the board command
package board

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ordo/internal/cli"
	"github.com/thenoetrevino/ordo/internal/cli/styles"
)

// BoardCmd returns the board command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show every column and its tasks side by side",
		Long: `Show the whole board in one consistent snapshot: columns left to right,
tasks top to bottom, both in position order.

Examples:
  ordo board
  ordo board --json
`,
		Args: cobra.NoArgs,
		RunE: runBoard,
	}

	cli.AddOutputFlags(cmd, "Minimal output (column IDs only)")

	return cmd
}

func runBoard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	board, err := cliInstance.App.Board().GetBoard(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		for _, bc := range board {
			fmt.Printf("%d\n", bc.Column.ID)
		}
		return nil
	}

	if formatter.JSON {
		out := make([]map[string]any, len(board))
		for i, bc := range board {
			out[i] = map[string]any{
				"column": cli.ColumnJSON(bc.Column),
				"tasks":  cli.TasksJSON(bc.Tasks),
			}
		}
		return formatter.JSONResult("board", out)
	}

	styles.Init(cliInstance.Config.Theme)
	fmt.Println(styles.RenderBoard(board))
	return nil
}
