package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the bak process.
const (
	// ExitSuccess indicates every target in the batch was processed cleanly.
	ExitSuccess = 0

	// ExitFailure indicates at least one per-target error occurred during the
	// batch. Targets that succeeded in the same batch were still processed;
	// the code only reports that the batch was not clean.
	ExitFailure = 1

	// ExitDiffUsage indicates diff mode was invoked with a number of path
	// arguments other than exactly one.
	ExitDiffUsage = 2

	// ExitDiffMissing indicates diff mode could not run because the original
	// file or its backup does not exist.
	ExitDiffMissing = 3
)

// Sentinel errors for expected per-target failure conditions.
var (
	// ErrNoBackupFound indicates no backup entry exists for the target.
	ErrNoBackupFound = errors.New("no backup found")

	// ErrTargetMissing indicates the path given for backup does not exist.
	ErrTargetMissing = errors.New("target does not exist")

	// ErrSourceMissing indicates the resolved backup source path does not
	// exist on the filesystem.
	ErrSourceMissing = errors.New("backup source missing")

	// ErrDestinationExists indicates a restore would overwrite an existing
	// file at the original location. bak refuses this unless flip mode moves
	// the existing file out of the way first.
	ErrDestinationExists = errors.New("destination exists, refusing to overwrite")
)

// ExitError wraps an error with a process exit code and optional suggestion.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewExitErrorWithSuggestion creates an ExitError with a suggestion.
func NewExitErrorWithSuggestion(err error, code int, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       code,
		Suggestion: suggestion,
	}
}

// NewDiffUsageError creates an ExitError for diff-mode argument misuse.
func NewDiffUsageError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitDiffUsage,
		Suggestion: "diff mode takes exactly one path",
	}
}

// NewDiffMissingError creates an ExitError for a diff pair that cannot be
// compared because one side is missing from the filesystem.
func NewDiffMissingError(err error) *ExitError {
	return &ExitError{
		Err:  err,
		Code: ExitDiffMissing,
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}
