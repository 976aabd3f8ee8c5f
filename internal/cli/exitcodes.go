package cli

import (
	"errors"

	projectservice "github.com/tarea-dev/tarea/internal/services/project"
	taskservice "github.com/tarea-dev/tarea/internal/services/task"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	// Use for: Normal, successful command execution.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, daemon connection errors, unexpected
	// failures, or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, invalid flag combinations,
	// or when the user needs to provide different arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Task not found, project not found, or any case where a
	// resource ID or name doesn't exist.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: Invalid JSON input, corrupted data, or data that cannot be processed.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Invalid status values, empty titles, non-positive IDs,
	// or any case where input fails validation rules.
	ExitValidation = 5
)

// ExitCodeForError maps an error returned by a command to the exit code
// the process should finish with. Commands return service errors rather
// than exiting inline so deferred cleanup still runs; the root command
// applies this mapping once.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, projectservice.ErrProjectNotFound),
		errors.Is(err, taskservice.ErrTaskNotFound):
		return ExitNotFound
	case errors.Is(err, projectservice.ErrEmptyName),
		errors.Is(err, projectservice.ErrNameTooLong),
		errors.Is(err, projectservice.ErrInvalidProjectID),
		errors.Is(err, taskservice.ErrEmptyTitle),
		errors.Is(err, taskservice.ErrTitleTooLong),
		errors.Is(err, taskservice.ErrInvalidTaskID),
		errors.Is(err, taskservice.ErrInvalidProjectID):
		return ExitValidation
	default:
		return ExitError
	}
}
