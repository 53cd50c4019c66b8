package bridge

import (
	"time"

	"github.com/wagiedev/action-bridge-go/internal/codec"
)

// PongBody is the fixed body of a fast-path response.
const PongBody = "pong"

// Outcome classifies how an invocation ended.
type Outcome string

const (
	// OutcomePong means the request was a ping and no process was started.
	OutcomePong Outcome = "pong"
	// OutcomeSuccess means the action exited 0; the body carries its stdout.
	OutcomeSuccess Outcome = "success"
	// OutcomeChildFailure means the action exited nonzero or was killed by a signal.
	OutcomeChildFailure Outcome = "child_failure"
	// OutcomeEncodeFailure means the request could not be serialized.
	OutcomeEncodeFailure Outcome = "encode_failure"
	// OutcomeInvalidInput means the request failed the action's input schema.
	OutcomeInvalidInput Outcome = "invalid_input"
	// OutcomeSpawnFailure means the action binary could not be started.
	OutcomeSpawnFailure Outcome = "spawn_failure"
	// OutcomeIOFailure means the request could not be written or the output not read.
	OutcomeIOFailure Outcome = "io_failure"
	// OutcomeTimeout means the invocation was stopped before the action exited.
	OutcomeTimeout Outcome = "timeout"
	// OutcomeRejected means a pre-invoke hook refused the request.
	OutcomeRejected Outcome = "rejected"
)

// Message prefixes of the non-success bodies. Hosts match on these.
//
// childFailureMessage is followed by the action's stderr only, as existing
// hosts expect. The exit code is not in the body; it is reported through
// Result.ExitCode and errors.ProcessError. When stderr is empty the exit
// status text (for example "exit status 2") is used instead.
const (
	serializeFailureMessage = "Failed to serialize input JSON: "
	invalidInputMessage     = "Invalid input JSON: "
	executeFailureMessage   = "Failed to execute binary: "
	childFailureMessage     = "Binary exited with error: "
	timeoutMessage          = "Binary timed out after "
	cancelledMessage        = "Binary invocation cancelled: "
	rejectedMessage         = "Invocation rejected: "
)

// Result is the Go-side record of one invocation. Only Envelope goes back to
// the host; the other fields let Go callers tell outcomes apart without
// inspecting the body.
type Result struct {
	// Envelope is the wire response.
	Envelope codec.Envelope

	// Outcome classifies the invocation.
	Outcome Outcome

	// ID identifies the invocation in logs.
	ID string

	// ExitCode of the action, or -1 when no exit status exists.
	ExitCode int

	// Stdout and Stderr are the captured streams, if the action ran.
	Stdout []byte
	Stderr []byte

	// StdoutTruncated and StderrTruncated report output lost to the capture limit.
	StdoutTruncated bool
	StderrTruncated bool

	// Duration covers the whole invocation, including encoding.
	Duration time.Duration

	// Err is the typed failure, nil for OutcomeSuccess and OutcomePong.
	Err error
}

// OK reports whether the invocation succeeded or was answered by the fast path.
func (r *Result) OK() bool {
	return r.Outcome == OutcomeSuccess || r.Outcome == OutcomePong
}
