// Package errors provides error handling conventions for the zipnest CLI.
//
// This package re-exports the cockroachdb/errors helpers used across the
// codebase, defines an ExitError type for CLI exit code handling, and
// declares exit code constants following standard Unix conventions.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//   - ExitNothingToDo (3): No active session, nothing to back up
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. It supports error unwrapping via [errors.Unwrap] and
// [errors.As]:
//
//	err := zerrors.NewUserError(err, "Check your config file")
//	var exitErr *zerrors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
