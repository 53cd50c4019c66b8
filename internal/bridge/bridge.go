package bridge

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/action-bridge-go/internal/action"
	"github.com/wagiedev/action-bridge-go/internal/codec"
	"github.com/wagiedev/action-bridge-go/internal/config"
	"github.com/wagiedev/action-bridge-go/internal/errors"
	"github.com/wagiedev/action-bridge-go/internal/hook"
	"github.com/wagiedev/action-bridge-go/internal/subprocess"
)

// Bridge runs one action binary per request. All fields are fixed at
// construction, so a Bridge is safe for concurrent use.
type Bridge struct {
	log         *slog.Logger
	name        string
	description string
	path        string
	args        []string
	env         []string
	dir         string
	timeout     time.Duration
	prefix      string
	maxOutput   int
	validator   *action.Validator
	hooks       hook.Hooks
	runner      config.Runner
}

// New creates a bridge for the action described by options.
//
// The binary is resolved once, here. A binary that cannot be found does not
// fail construction: each invocation then reports it as a spawn failure.
// Construction fails if no binary is configured, if a relative binary has
// no working directory, if a pinned digest does not match, or if the input
// schema does not compile.
func New(ctx context.Context, options *config.Options) (*Bridge, error) {
	if options == nil || options.Binary == "" {
		return nil, errors.ErrBinaryRequired
	}

	log := options.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	name := options.Name
	if name == "" {
		name = filepath.Base(options.Binary)
	}

	log = log.With("component", "bridge", "action", name)

	resolver := action.NewResolver(&action.Config{
		Binary:      options.Binary,
		Dir:         options.Dir,
		SearchPaths: options.SearchPaths,
		Logger:      log,
	})

	path, err := resolver.Resolve(ctx)
	if err != nil {
		notFound, ok := stderrors.AsType[*errors.ActionNotFoundError](err)
		if !ok {
			return nil, fmt.Errorf("resolve action: %w", err)
		}

		if options.Digest != "" {
			return nil, fmt.Errorf("verify action digest: %w", err)
		}

		log.Warn("Action binary not found; invocations will fail until it exists",
			"searched_paths", notFound.SearchedPaths)
	} else if options.Digest != "" {
		if err := action.VerifyDigest(path, options.Digest); err != nil {
			return nil, fmt.Errorf("verify action digest: %w", err)
		}

		log.Debug("Action digest verified", "path", path)
	}

	var validator *action.Validator
	if options.InputSchema != nil {
		validator, err = action.NewValidator(options.InputSchema)
		if err != nil {
			return nil, err
		}
	}

	runner := options.Runner
	if runner == nil {
		runner = subprocess.NewRunner(log)
	}

	b := &Bridge{
		log:         log,
		name:        name,
		description: options.Description,
		path:        path,
		args:        append([]string(nil), options.Args...),
		env:         subprocess.BuildEnvironment(options.Env),
		dir:         options.Dir,
		timeout:     options.Timeout,
		prefix:      options.Prefix(),
		maxOutput:   options.OutputLimit(),
		validator:   validator,
		hooks:       options.Hooks,
		runner:      runner,
	}

	log.Info("Bridge ready", "path", path, "timeout", b.timeout)

	return b, nil
}

// Name returns the action name.
func (b *Bridge) Name() string {
	return b.name
}

// Description returns the action description.
func (b *Bridge) Description() string {
	return b.description
}

// Path returns the resolved action binary.
func (b *Bridge) Path() string {
	return b.path
}

// InputSchema returns the action's input schema, or nil if requests are not validated.
func (b *Bridge) InputSchema() *jsonschema.Schema {
	if b.validator == nil {
		return nil
	}

	return b.validator.Schema()
}

// Invoke runs the action for request and returns the envelope for the host.
func (b *Bridge) Invoke(ctx context.Context, request any) codec.Envelope {
	return b.Execute(ctx, request).Envelope
}

// Execute runs the action for request and returns the full result.
//
// A request whose ping field is true is answered with "pong" without
// starting a process. Otherwise the request is encoded, optionally
// validated, written to a fresh action process, and the outcome is wrapped
// in an envelope. Every non-ping body carries the bridge's output prefix.
func (b *Bridge) Execute(ctx context.Context, request any) (result *Result) {
	start := time.Now()
	id := ulid.Make().String()
	log := b.log.With("invocation_id", id)

	result = &Result{ID: id, ExitCode: -1}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: %v", errors.ErrRunnerPanic, r)
			log.Error("Invocation panicked", "error", err)
			b.fail(result, OutcomeIOFailure, executeFailureMessage+err.Error(), err)
		}

		result.Duration = time.Since(start)
		log.Debug("Invocation finished", "outcome", result.Outcome, "duration", result.Duration)

		b.runPostHooks(ctx, log, result)
	}()

	if codec.IsPing(request) {
		log.Debug("Answering ping without starting the action")

		result.Outcome = OutcomePong
		result.Envelope = codec.Envelope{Body: PongBody}

		return result
	}

	data, err := codec.Encode(request)
	if err != nil {
		log.Warn("Failed to serialize request", "error", err)

		cause := err
		if encErr, ok := stderrors.AsType[*errors.EncodeError](err); ok {
			cause = encErr.Err
		}

		b.fail(result, OutcomeEncodeFailure, serializeFailureMessage+cause.Error(), err)

		return result
	}

	if b.validator != nil {
		if err := b.validator.Validate(data); err != nil {
			log.Debug("Request failed input schema", "error", err)

			cause := err
			if invalidErr, ok := stderrors.AsType[*errors.InvalidInputError](err); ok {
				cause = invalidErr.Err
			}

			b.fail(result, OutcomeInvalidInput, invalidInputMessage+cause.Error(), err)

			return result
		}
	}

	if b.hooks.Has(hook.EventPreInvoke) {
		err := b.hooks.Run(ctx, &hook.PreInvokeInput{
			BaseInput: hook.BaseInput{InvocationID: id, Action: b.name},
			Request:   data,
		})
		if err != nil {
			log.Info("Invocation rejected by hook", "error", err)

			b.fail(result, OutcomeRejected, rejectedMessage+err.Error(), &errors.RejectedError{Err: err})

			return result
		}
	}

	out, err := b.runner.Run(ctx, &config.Invocation{
		ID:             id,
		Path:           b.path,
		Args:           b.args,
		Env:            b.env,
		Dir:            b.dir,
		Stdin:          data,
		Timeout:        b.timeout,
		MaxOutputBytes: b.maxOutput,
	})

	if out != nil {
		result.ExitCode = out.ExitCode
		result.Stdout = out.Stdout
		result.Stderr = out.Stderr
		result.StdoutTruncated = out.StdoutTruncated
		result.StderrTruncated = out.StderrTruncated
	}

	if err != nil {
		b.classify(result, err)

		return result
	}

	result.Outcome = OutcomeSuccess
	result.Envelope = codec.Envelope{Body: b.prefix + codec.Lossy(result.Stdout)}

	return result
}

// runPostHooks reports the final result to post-invoke hooks. Hook
// failures never change the result.
func (b *Bridge) runPostHooks(ctx context.Context, log *slog.Logger, result *Result) {
	if !b.hooks.Has(hook.EventPostInvoke) {
		return
	}

	err := b.hooks.Run(ctx, &hook.PostInvokeInput{
		BaseInput: hook.BaseInput{InvocationID: result.ID, Action: b.name},
		Outcome:   string(result.Outcome),
		ExitCode:  result.ExitCode,
		Body:      result.Envelope.Body,
		Duration:  result.Duration,
		Err:       result.Err,
	})
	if err != nil {
		log.Warn("Post-invoke hook failed", "error", err)
	}
}

// classify maps a runner error onto an outcome and a body.
func (b *Bridge) classify(result *Result, err error) {
	if procErr, ok := stderrors.AsType[*errors.ProcessError](err); ok {
		detail := procErr.Stderr
		if detail == "" && procErr.Err != nil {
			detail = procErr.Err.Error()
		}

		result.ExitCode = procErr.ExitCode
		b.fail(result, OutcomeChildFailure, childFailureMessage+detail, err)

		return
	}

	if timeoutErr, ok := stderrors.AsType[*errors.TimeoutError](err); ok {
		if timeoutErr.Timeout > 0 {
			b.fail(result, OutcomeTimeout, timeoutMessage+timeoutErr.Timeout.String(), err)
		} else {
			b.fail(result, OutcomeTimeout, cancelledMessage+fmt.Sprint(timeoutErr.Err), err)
		}

		return
	}

	if spawnErr, ok := stderrors.AsType[*errors.SpawnError](err); ok {
		b.fail(result, OutcomeSpawnFailure, executeFailureMessage+spawnErr.Err.Error(), err)

		return
	}

	b.fail(result, OutcomeIOFailure, executeFailureMessage+err.Error(), err)
}

// fail records a non-success outcome with a prefixed body.
func (b *Bridge) fail(result *Result, outcome Outcome, message string, err error) {
	result.Outcome = outcome
	result.Err = err
	result.Envelope = codec.Envelope{Body: b.prefix + message}
}
