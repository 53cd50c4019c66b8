package config

import (
	"context"
	"time"
)

// Invocation describes one child-process execution.
type Invocation struct {
	// ID identifies the invocation in logs.
	ID string

	// Path is the resolved action binary.
	Path string

	// Args are passed after Path.
	Args []string

	// Env is the complete environment of the child, in "KEY=value" form.
	// If nil, the child inherits the bridge's environment.
	Env []string

	// Dir is the working directory of the child. Empty inherits the bridge's.
	Dir string

	// Stdin is written to the child in full, then the stream is closed.
	Stdin []byte

	// Timeout bounds the invocation. Zero means no limit beyond the context.
	Timeout time.Duration

	// MaxOutputBytes caps the captured stdout and stderr, each.
	MaxOutputBytes int
}

// Output is what a finished child left behind.
type Output struct {
	// Pid of the child process.
	Pid int

	// ExitCode is 0 on success, the exit status otherwise, or -1 when the
	// child was killed by a signal.
	ExitCode int

	// Stdout and Stderr are the captured streams, truncated at the limit.
	Stdout []byte
	Stderr []byte

	// StdoutTruncated and StderrTruncated report output lost to the limit.
	StdoutTruncated bool
	StderrTruncated bool

	// Duration is the wall time from spawn to reap.
	Duration time.Duration
}

// Runner executes action invocations.
// Implement this to provide custom runners for testing, mocking, or
// alternative sandboxes.
//
// The default implementation is subprocess.Runner which spawns the action
// as a local child process.
type Runner interface {
	// Run executes inv and blocks until the child has been reaped.
	//
	// A non-nil Output accompanies every error that happened after the
	// child started, so callers can report captured stderr. Run must be
	// safe for concurrent use.
	Run(ctx context.Context, inv *Invocation) (*Output, error)
}
