package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// AddOutputFlags adds the agent-friendly --json and --quiet flags
func AddOutputFlags(cmd *cobra.Command, quietHelp string) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, quietHelp)
}

// Formatter builds the OutputFormatter selected by --json and --quiet
func Formatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}

// OptionalInt returns the flag value, or nil when the flag was not given
func OptionalInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return nil
	}
	return &v
}

// OptionalString returns the flag value, or nil when the flag was not given
func OptionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil
	}
	return &v
}

// IDFromArgsOrFlag reads an id from the first positional argument or from
// the --id flag
func IDFromArgsOrFlag(cmd *cobra.Command, args []string) (int, error) {
	if len(args) > 0 {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return 0, Usagef("id must be a positive integer, got %q", args[0])
		}
		return id, nil
	}
	id, _ := cmd.Flags().GetInt("id")
	if id <= 0 {
		return 0, Usagef("id must be a positive integer (pass it as an argument or with --id)")
	}
	return id, nil
}
