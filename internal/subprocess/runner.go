package subprocess

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"sync"
	"time"

	"github.com/wagiedev/action-bridge-go/internal/codec"
	"github.com/wagiedev/action-bridge-go/internal/config"
	"github.com/wagiedev/action-bridge-go/internal/errors"
)

const (
	// waitDelay bounds how long Wait keeps draining output after the action
	// exits or is killed. A grandchild that inherited stdout or stderr would
	// otherwise hold the invocation open until it exits too.
	waitDelay = 2 * time.Second
)

// Runner implements config.Runner by spawning the action as a local child
// process. It holds no per-invocation state and is safe for concurrent use.
type Runner struct {
	log *slog.Logger
}

// Compile-time verification that Runner implements the config.Runner interface.
var _ config.Runner = (*Runner)(nil)

// NewRunner creates a subprocess runner.
//
// The logger is used for operation tracking and debugging. It will receive
// debug, info, warn, and error messages for every invocation.
func NewRunner(log *slog.Logger) *Runner {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Runner{log: log.With("component", "subprocess_runner")}
}

// Run spawns the action, writes inv.Stdin to it, closes stdin, and blocks
// until the action has exited and both output streams are drained.
//
// Errors are typed:
//   - *errors.SpawnError if the process could not be started
//   - *errors.PipeError if stdin could not be written or output not drained
//   - *errors.ProcessError if the action exited nonzero or was killed
//   - *errors.TimeoutError if inv.Timeout or ctx ended the invocation
//
// Every error after a successful start is returned alongside the captured
// output. The process is reaped on every path.
func (r *Runner) Run(ctx context.Context, inv *config.Invocation) (*config.Output, error) {
	log := r.log.With("invocation_id", inv.ID, "path", inv.Path)

	runCtx := ctx
	if inv.Timeout > 0 {
		var cancel context.CancelFunc

		runCtx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	//nolint:gosec // G204: launching the configured action binary is the purpose of this package
	cmd := exec.CommandContext(runCtx, inv.Path, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Env = inv.Env
	cmd.WaitDelay = waitDelay

	stdout := newCappedBuffer(inv.MaxOutputBytes)
	stderr := newCappedBuffer(inv.MaxOutputBytes)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		log.Error("Failed to create stdin pipe", "error", err)

		return nil, &errors.SpawnError{Path: inv.Path, Err: fmt.Errorf("stdin pipe: %w", err)}
	}

	start := time.Now()

	if err := cmd.Start(); err != nil {
		if ctxErr := runCtx.Err(); ctxErr != nil {
			return nil, timeoutError(ctx, inv.Timeout, ctxErr)
		}

		log.Error("Failed to start action process", "error", err)

		return nil, &errors.SpawnError{Path: inv.Path, Err: err}
	}

	pid := cmd.Process.Pid
	log.Debug("Action process started", "pid", pid)

	// Output is drained by exec's copy goroutines, so a blocked write here
	// only waits on the action reading its input. Wait closes stdin, so the
	// request must be written first.
	writeErr := writeInput(stdin, inv.Stdin)
	waitErr := cmd.Wait()

	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}

	out := &config.Output{
		Pid:             pid,
		ExitCode:        exitCode,
		Stdout:          stdout.Bytes(),
		Stderr:          stderr.Bytes(),
		StdoutTruncated: stdout.Truncated(),
		StderrTruncated: stderr.Truncated(),
		Duration:        time.Since(start),
	}

	log = log.With("pid", pid, "exit_code", out.ExitCode, "duration", out.Duration)

	if waitErr != nil {
		if ctxErr := runCtx.Err(); ctxErr != nil {
			log.Warn("Action process stopped before exiting", "error", ctxErr)

			return out, timeoutError(ctx, inv.Timeout, ctxErr)
		}
	}

	if writeErr != nil {
		log.Error("Failed to write request to action", "error", writeErr)

		return out, writeErr
	}

	if waitErr != nil {
		if exitErr, ok := stderrors.AsType[*exec.ExitError](waitErr); ok {
			stderrText := codec.Lossy(out.Stderr)
			log.Debug("Action process exited with error", "stderr", stderrText)

			return out, &errors.ProcessError{
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderrText,
				Err:      waitErr,
			}
		}

		log.Error("Failed to collect action output", "error", waitErr)

		return out, &errors.PipeError{Stream: "output", Err: waitErr}
	}

	if out.StdoutTruncated || out.StderrTruncated {
		log.Warn("Action output exceeded capture limit",
			"stdout_truncated", out.StdoutTruncated,
			"stderr_truncated", out.StderrTruncated,
		)
	}

	log.Debug("Action process exited successfully", "stdout_len", len(out.Stdout))

	return out, nil
}

// writeInput writes the full request and closes stdin to signal end of input.
func writeInput(stdin io.WriteCloser, data []byte) error {
	_, writeErr := stdin.Write(data)
	closeErr := stdin.Close()

	if writeErr != nil {
		return &errors.PipeError{Stream: "stdin", Err: fmt.Errorf("write request: %w", writeErr)}
	}

	if closeErr != nil && !stderrors.Is(closeErr, os.ErrClosed) {
		return &errors.PipeError{Stream: "stdin", Err: fmt.Errorf("close: %w", closeErr)}
	}

	return nil
}

// timeoutError classifies a context-ended invocation. The bridge's own
// timeout is reported with its duration; a caller cancellation or a caller
// deadline is reported as cancelled.
func timeoutError(parent context.Context, timeout time.Duration, ctxErr error) error {
	if timeout > 0 && parent.Err() == nil && stderrors.Is(ctxErr, context.DeadlineExceeded) {
		return &errors.TimeoutError{Timeout: timeout, Err: ctxErr}
	}

	return &errors.TimeoutError{Err: ctxErr}
}

// BuildEnvironment returns the child environment: the bridge's own
// environment followed by extra, in key order so later entries win.
// It returns nil when extra is empty, which makes the child inherit.
func BuildEnvironment(extra map[string]string) []string {
	if len(extra) == 0 {
		return nil
	}

	keys := make([]string, 0, len(extra))
	for key := range extra {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	env := os.Environ()
	for _, key := range keys {
		env = append(env, fmt.Sprintf("%s=%s", key, extra[key]))
	}

	return env
}

// cappedBuffer keeps the first limit bytes written to it and discards the
// rest while still reporting full writes, so the producer never blocks.
type cappedBuffer struct {
	mu        sync.Mutex
	buf       []byte
	limit     int
	truncated bool
}

func newCappedBuffer(limit int) *cappedBuffer {
	if limit <= 0 {
		limit = config.DefaultMaxOutputBytes
	}

	return &cappedBuffer{limit: limit}
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	room := b.limit - len(b.buf)
	if room <= 0 {
		if len(p) > 0 {
			b.truncated = true
		}

		return len(p), nil
	}

	if len(p) > room {
		b.buf = append(b.buf, p[:room]...)
		b.truncated = true

		return len(p), nil
	}

	b.buf = append(b.buf, p...)

	return len(p), nil
}

// Bytes returns a copy of the captured bytes.
func (b *cappedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]byte, len(b.buf))
	copy(out, b.buf)

	return out
}

// Truncated reports whether any written bytes were discarded.
func (b *cappedBuffer) Truncated() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.truncated
}
