// Package cmd assembles the ordo command tree
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ordo/internal/cli"
	"github.com/thenoetrevino/ordo/internal/cli/board"
	"github.com/thenoetrevino/ordo/internal/cli/check"
	"github.com/thenoetrevino/ordo/internal/cli/column"
	"github.com/thenoetrevino/ordo/internal/cli/serve"
	"github.com/thenoetrevino/ordo/internal/cli/task"
)

// NewRootCmd builds the ordo command with every subcommand attached
func NewRootCmd() *cobra.Command {
	var opts cli.Options

	rootCmd := &cobra.Command{
		Use:   "ordo",
		Short: "Ordo - an ordered kanban board",
		Long: `Ordo keeps board columns and the tasks inside them in a strict order.
Every insert, delete, reorder and move renumbers positions atomically, so
each column and task list always reads 0..n-1.

Run 'ordo serve' for the HTTP API, or use the commands below directly.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(cli.WithOptions(ctx, opts))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/ordo/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "Board database file (default: ~/.ordo/board.db)")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Debug logging")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return cli.Usagef("%v", err)
	})

	rootCmd.AddCommand(column.ColumnCmd())
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(check.CheckCmd())
	rootCmd.AddCommand(serve.ServeCmd())

	return rootCmd
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	return run(context.Background(), NewRootCmd(), os.Args[1:], os.Stderr)
}

func run(ctx context.Context, rootCmd *cobra.Command, args []string, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return cli.ExitSuccess
	}

	// Commands report their own failures and return a CodedError. Anything
	// else comes from cobra: unknown commands, missing required flags, bad args.
	var coded *cli.CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", rootCmd.CommandPath())
	if code := cli.ExitCodeFor(err); code != cli.ExitError {
		return code
	}
	return cli.ExitUsage
}
