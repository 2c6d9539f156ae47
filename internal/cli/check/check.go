// Package check implements the position density check and repair command
package check

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/ordo/internal/cli"
	"github.com/thenoetrevino/ordo/internal/cli/styles"
	"github.com/thenoetrevino/ordo/internal/position"
)

// CheckCmd returns the check command
func CheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that every column and task list is densely positioned",
		Long: `Verify that positions in every partition run 0..n-1 with no gaps or
duplicates. Exits with code 4 when a partition is broken.

--repair renumbers broken partitions in place, keeping their current order.
Rows written by other tools are the usual cause.

Examples:
  ordo check
  ordo check --repair
  ordo check --json
`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}

	cmd.Flags().Bool("repair", false, "Compact partitions that are not dense")

	cli.AddOutputFlags(cmd, "No output; report through the exit code only")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)
	repair, _ := cmd.Flags().GetBool("repair")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	maint := cliInstance.App.Maintenance()

	var repaired []position.Violation
	if repair {
		repaired, err = maint.Repair(ctx)
		if err != nil {
			return formatter.Fail(err)
		}
	}

	reports, err := maint.Check(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	broken := 0
	for _, r := range reports {
		broken += len(r.Violations)
	}

	if formatter.JSON && broken == 0 {
		return formatter.JSONResult("check", map[string]any{
			"reports":  reportsJSON(reports),
			"repaired": violationsJSON(repaired),
		})
	}
	if !formatter.Quiet && !formatter.JSON {
		styles.Init(cliInstance.Config.Theme)
		printHuman(reports, repaired)
	}

	if broken > 0 {
		return formatter.FailWithSuggestion(
			fmt.Errorf("%w: %d partition(s) need repair", position.ErrNotDense, broken),
			"Run 'ordo check --repair'")
	}
	return nil
}

func printHuman(reports []position.Report, repaired []position.Violation) {
	for _, v := range repaired {
		fmt.Printf("🔧 Repaired partition %d (was %v)\n", v.Partition, v.Positions)
	}
	for _, r := range reports {
		if r.OK() {
			fmt.Printf("%s %s: %d partition(s), %d member(s), dense\n", styles.SuccessStyle.Render("✓"), r.Table, r.Partitions, r.Members)
			continue
		}
		fmt.Printf("%s %s: %d of %d partition(s) not dense\n", styles.ErrorStyle.Render("✗"), r.Table, len(r.Violations), r.Partitions)
		for _, v := range r.Violations {
			fmt.Printf("  partition %d: positions %v\n", v.Partition, v.Positions)
		}
	}
}

func reportsJSON(reports []position.Report) []map[string]any {
	out := make([]map[string]any, len(reports))
	for i, r := range reports {
		out[i] = map[string]any{
			"table":      r.Table,
			"partitions": r.Partitions,
			"members":    r.Members,
			"violations": violationsJSON(r.Violations),
		}
	}
	return out
}

func violationsJSON(violations []position.Violation) []map[string]any {
	out := make([]map[string]any, len(violations))
	for i, v := range violations {
		out[i] = map[string]any{
			"partition": v.Partition,
			"positions": v.Positions,
		}
	}
	return out
}
