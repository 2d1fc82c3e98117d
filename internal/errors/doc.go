// Package errors provides error handling conventions for the bak CLI.
//
// This package defines sentinel errors for the expected per-target failure
// conditions, an ExitError type for CLI exit code handling, and the exit
// code constants the bak process reports.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [errors.Is]:
//
//	if errors.Is(err, bakerrors.ErrNoBackupFound) {
//	    // handle missing backup case
//	}
//
// # Exit Codes
//
// The package defines the exit codes of the bak process:
//
//   - ExitSuccess (0): Every target in the batch was processed cleanly
//   - ExitFailure (1): At least one per-target error occurred
//   - ExitDiffUsage (2): Diff mode was given a path count other than one
//   - ExitDiffMissing (3): Diff mode found the original or backup missing
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. It supports error unwrapping via [errors.Unwrap] and
// [errors.As]:
//
//	var exitErr *bakerrors.ExitError
//	if errors.As(err, &exitErr) {
//	    if exitErr.Suggestion != "" {
//	        fmt.Println("Suggestion:", exitErr.Suggestion)
//	    }
//	    os.Exit(exitErr.Code)
//	}
package errors
