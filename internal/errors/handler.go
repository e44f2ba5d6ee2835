package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ExitCode maps an error to the process exit status. Nil maps to ExitSuccess.
func ExitCode(err error) int {
	var (
		configErr     ConfigError
		validationErr ValidationError
		inputErr      InputError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		return ExitErrorConfig
	case errors.As(err, &inputErr):
		return ExitErrorInput
	case errors.Is(err, ErrMismatch):
		return ExitErrorMismatch
	case IsContextError(err):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}

// HandleRunError prints a one-line description of err and returns the exit
// code the process should terminate with.
//
// Parameters:
//   - err: The error that terminated the run (nil is a no-op).
//   - out: The writer for the error description, usually stderr.
//
// Returns:
//   - int: The exit code matching the error class.
func HandleRunError(err error, out io.Writer) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(out, "Error: %v\n", err)
	return ExitCode(err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
