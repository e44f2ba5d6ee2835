package apperrors

import (
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic or worker failure.
	ExitErrorMismatch = 3   // Indicates a result mismatch between strategies.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorInput    = 5   // Indicates malformed input data.
	ExitErrorCanceled = 130 // Indicates the run was interrupted (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// a non-positive chunk count. It is raised before any worker is started.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// InputError marks a failure caused by the data being processed rather than
// by the configuration, e.g. a measurement line that cannot be parsed or a
// measurements file that cannot be read.
type InputError struct {
	// Source names where the data came from (a file path or "stdin").
	Source string
	// Cause is the underlying read or parse failure.
	Cause error
}

// Error returns the source-qualified message of the underlying cause.
func (e InputError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("input error: %v", e.Cause)
	}
	return fmt.Sprintf("input error in %s: %v", e.Source, e.Cause)
}

// Unwrap returns the underlying cause.
func (e InputError) Unwrap() error { return e.Cause }

// WorkerError reports the failure of the worker that owned one chunk. A single
// failed chunk invalidates the whole run.
type WorkerError struct {
	// Chunk is the zero-based index of the chunk the worker was assigned.
	Chunk int
	// Mode is the execution strategy the worker was started under.
	Mode string
	// Cause is the error raised by the worker.
	Cause error
}

// Error returns a message naming the failed chunk and its cause.
func (e *WorkerError) Error() string {
	return fmt.Sprintf("%s worker for chunk %d failed: %v", e.Mode, e.Chunk, e.Cause)
}

// Unwrap returns the error raised by the worker.
func (e *WorkerError) Unwrap() error { return e.Cause }

// ErrMismatch is returned when two strategies disagree on the result of the
// same workload.
var ErrMismatch = errors.New("strategies produced different results")

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}
