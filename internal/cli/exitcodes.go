package cli

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, lock contention that outlived its retries,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags or invalid flag combinations.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Task not found, column not found.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or corrupted stored data.
	// Use for: Partitions whose positions are not dense.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Empty or oversized titles, positions outside the partition.
	ExitValidation = 5
)
