package actionbridge

import "github.com/wagiedev/action-bridge-go/internal/errors"

// Re-export error types from internal package

// ActionNotFoundError indicates the action binary could not be located.
type ActionNotFoundError = errors.ActionNotFoundError

// DigestMismatchError indicates the action binary does not match its pinned digest.
type DigestMismatchError = errors.DigestMismatchError

// EncodeError indicates a request could not be serialized to JSON.
type EncodeError = errors.EncodeError

// InvalidInputError indicates a request failed the action's input schema.
type InvalidInputError = errors.InvalidInputError

// SpawnError indicates the action binary could not be started.
type SpawnError = errors.SpawnError

// PipeError indicates writing to or reading from a child stream failed.
type PipeError = errors.PipeError

// ProcessError indicates the action process exited unsuccessfully.
type ProcessError = errors.ProcessError

// TimeoutError indicates the invocation was stopped before the action exited.
type TimeoutError = errors.TimeoutError

// RejectedError indicates a pre-invoke hook refused the invocation.
type RejectedError = errors.RejectedError

// BridgeError is the base interface for all bridge errors.
type BridgeError = errors.BridgeError

// Re-export sentinel errors from internal package.
var (
	// ErrBinaryRequired indicates a bridge was configured without an action binary.
	ErrBinaryRequired = errors.ErrBinaryRequired

	// ErrNotObject indicates a JSON document was not an object where one was required.
	ErrNotObject = errors.ErrNotObject

	// ErrRunnerPanic indicates a runner panicked during an invocation.
	ErrRunnerPanic = errors.ErrRunnerPanic
)
