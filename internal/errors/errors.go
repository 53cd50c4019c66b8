package errors

import (
	"errors"
	"fmt"
	"time"
)

// BridgeError is the base interface for all bridge errors.
type BridgeError interface {
	error
	IsBridgeError() bool
}

// Compile-time verification that all error types implement BridgeError.
var (
	_ BridgeError = (*ActionNotFoundError)(nil)
	_ BridgeError = (*DigestMismatchError)(nil)
	_ BridgeError = (*EncodeError)(nil)
	_ BridgeError = (*InvalidInputError)(nil)
	_ BridgeError = (*SpawnError)(nil)
	_ BridgeError = (*PipeError)(nil)
	_ BridgeError = (*ProcessError)(nil)
	_ BridgeError = (*TimeoutError)(nil)
	_ BridgeError = (*RejectedError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrBinaryRequired indicates a bridge was configured without an action binary.
	ErrBinaryRequired = errors.New("action binary path is required")

	// ErrNotObject indicates a JSON document was not an object where one was required.
	ErrNotObject = errors.New("JSON value is not an object")

	// ErrRunnerPanic indicates a runner panicked during an invocation.
	ErrRunnerPanic = errors.New("runner panicked")
)

// ActionNotFoundError indicates the action binary could not be located.
type ActionNotFoundError struct {
	Name          string
	SearchedPaths []string
}

func (e *ActionNotFoundError) Error() string {
	return fmt.Sprintf("action binary %q not found in: %v", e.Name, e.SearchedPaths)
}

// IsBridgeError implements BridgeError.
func (e *ActionNotFoundError) IsBridgeError() bool { return true }

// DigestMismatchError indicates the action binary does not match its pinned digest.
type DigestMismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *DigestMismatchError) Error() string {
	return fmt.Sprintf("action binary %s digest mismatch: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// IsBridgeError implements BridgeError.
func (e *DigestMismatchError) IsBridgeError() bool { return true }

// EncodeError indicates a request could not be serialized to JSON.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode request: %v", e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// IsBridgeError implements BridgeError.
func (e *EncodeError) IsBridgeError() bool { return true }

// InvalidInputError indicates a request failed the action's input schema.
type InvalidInputError struct {
	Err error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %v", e.Err)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

// IsBridgeError implements BridgeError.
func (e *InvalidInputError) IsBridgeError() bool { return true }

// SpawnError indicates the action binary could not be started.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("start %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// IsBridgeError implements BridgeError.
func (e *SpawnError) IsBridgeError() bool { return true }

// PipeError indicates writing to or reading from a child stream failed.
type PipeError struct {
	Stream string
	Err    error
}

func (e *PipeError) Error() string {
	return fmt.Sprintf("%s pipe: %v", e.Stream, e.Err)
}

func (e *PipeError) Unwrap() error {
	return e.Err
}

// IsBridgeError implements BridgeError.
func (e *PipeError) IsBridgeError() bool { return true }

// ProcessError indicates the action process exited unsuccessfully.
type ProcessError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("action process failed (exit %d): %v", e.ExitCode, e.Err)
	}

	return fmt.Sprintf("action process failed (exit %d): %s", e.ExitCode, e.Stderr)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// IsBridgeError implements BridgeError.
func (e *ProcessError) IsBridgeError() bool { return true }

// TimeoutError indicates the invocation was stopped before the action exited.
// Timeout is zero when the caller's context was cancelled rather than a
// deadline expiring.
type TimeoutError struct {
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	if e.Timeout > 0 {
		return fmt.Sprintf("action timed out after %s", e.Timeout)
	}

	return fmt.Sprintf("action invocation cancelled: %v", e.Err)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// IsBridgeError implements BridgeError.
func (e *TimeoutError) IsBridgeError() bool { return true }

// RejectedError indicates a pre-invoke hook refused the invocation.
type RejectedError struct {
	Err error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("rejected by hook: %v", e.Err)
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}

// IsBridgeError implements BridgeError.
func (e *RejectedError) IsBridgeError() bool { return true }
