package actionbridge

import (
	"log/slog"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
)

// Option configures BridgeOptions using the functional options pattern.
// This is the primary option type for configuring bridges.
type Option func(*BridgeOptions)

// applyBridgeOptions applies functional options to a BridgeOptions struct.
func applyBridgeOptions(options *BridgeOptions, opts []Option) *BridgeOptions {
	if options == nil {
		options = &BridgeOptions{}
	}

	for _, opt := range opts {
		opt(options)
	}

	return options
}

// ===== Basic Configuration =====

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *BridgeOptions) {
		o.Logger = logger
	}
}

// WithBinary sets the action executable and its arguments.
// A relative path requires WithDir; a bare name is looked up in PATH.
func WithBinary(path string, args ...string) Option {
	return func(o *BridgeOptions) {
		o.Binary = path
		if len(args) > 0 {
			o.Args = args
		}
	}
}

// WithArgs sets the arguments passed to the action.
func WithArgs(args ...string) Option {
	return func(o *BridgeOptions) {
		o.Args = args
	}
}

// WithName sets the action name used in logs and tool listings.
func WithName(name string) Option {
	return func(o *BridgeOptions) {
		o.Name = name
	}
}

// WithDescription sets a human-readable summary of the action.
func WithDescription(description string) Option {
	return func(o *BridgeOptions) {
		o.Description = description
	}
}

// WithEnv provides additional environment variables for the action process.
func WithEnv(env map[string]string) Option {
	return func(o *BridgeOptions) {
		o.Env = env
	}
}

// WithDir sets the working directory of the action process.
// A relative binary path is resolved against it.
func WithDir(dir string) Option {
	return func(o *BridgeOptions) {
		o.Dir = dir
	}
}

// WithSearchPaths adds directories searched for a bare binary name after PATH.
func WithSearchPaths(dirs ...string) Option {
	return func(o *BridgeOptions) {
		o.SearchPaths = dirs
	}
}

// ===== Invocation Behavior =====

// WithTimeout bounds each invocation. When it expires the action is killed
// and the envelope reports the timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *BridgeOptions) {
		o.Timeout = timeout
	}
}

// WithOutputPrefix sets the text prepended to every non-ping body.
// Pass an empty string to return the action's output unprefixed.
func WithOutputPrefix(prefix string) Option {
	return func(o *BridgeOptions) {
		o.OutputPrefix = &prefix
	}
}

// WithMaxOutputBytes caps the captured stdout and stderr, each.
func WithMaxOutputBytes(n int) Option {
	return func(o *BridgeOptions) {
		o.MaxOutputBytes = n
	}
}

// ===== Integrity and Validation =====

// WithDigest pins the action binary to a hex BLAKE3 digest.
// New fails if the binary does not match.
func WithDigest(digest string) Option {
	return func(o *BridgeOptions) {
		o.Digest = digest
	}
}

// WithInputSchema validates every request against schema before the action
// is started.
func WithInputSchema(schema *jsonschema.Schema) Option {
	return func(o *BridgeOptions) {
		o.InputSchema = schema
	}
}

// ===== Advanced =====

// WithRunner injects a custom Runner, replacing local process execution.
func WithRunner(runner Runner) Option {
	return func(o *BridgeOptions) {
		o.Runner = runner
	}
}
