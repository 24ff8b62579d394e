package cli

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/dealboard/internal/drag"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/remote"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: an unreachable store, server errors, unexpected failures.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: missing required flags or arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: unknown pipeline, deal or stage ids and names.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: responses or input that cannot be decoded.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: a move the store rejected, or a move that needs a pipeline.
	ExitValidation = 5
)

// CommandError carries the process exit code for a failed command. The message
// has already been reported by the OutputFormatter when Reported is set.
type CommandError struct {
	Code     int
	Err      error
	Reported bool
}

func (e *CommandError) Error() string {
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Exit wraps err with an explicit exit code
func Exit(code int, err error) error {
	return &CommandError{Code: code, Err: err, Reported: true}
}

// Exitf formats an error with an explicit exit code
func Exitf(code int, format string, args ...any) error {
	return Exit(code, fmt.Errorf(format, args...))
}

// ExitCodeFor maps an error returned by a command to a process exit code
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *CommandError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, models.ErrPipelineNotFound),
		errors.Is(err, models.ErrStageNotFound),
		errors.Is(err, remote.ErrNotFound),
		errors.Is(err, drag.ErrUnknownStage):
		return ExitNotFound
	case errors.Is(err, drag.ErrPersistenceRejected),
		errors.Is(err, drag.ErrNoPipeline):
		return ExitValidation
	case errors.Is(err, ErrNotInteractive):
		return ExitUsage
	}
	return ExitError
}
