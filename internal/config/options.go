package config

import (
	"log/slog"
	"time"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/wagiedev/action-bridge-go/internal/hook"
)

const (
	// DefaultOutputPrefix is prepended to every non-ping envelope body.
	// Existing hosts match on it, so it stays the default.
	DefaultOutputPrefix = "Mobilenet output:\n"

	// DefaultMaxOutputBytes caps how much of stdout and of stderr is kept.
	// Output past the cap is still drained so the action never blocks on a
	// full pipe.
	DefaultMaxOutputBytes = 10 * 1024 * 1024 // 10MB
)

// Options configures one bridge. A bridge wraps exactly one action binary.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// Name identifies the action in logs and in the MCP tool listing.
	// Defaults to the base name of Binary.
	Name string

	// Description is a human-readable summary of what the action computes.
	Description string

	// Binary is the action executable. Relative paths are resolved against
	// Dir; bare names are looked up in PATH and then SearchPaths.
	Binary string

	// Args are passed to the action after the binary path.
	Args []string

	// Env provides additional environment variables for the action process.
	Env map[string]string

	// Dir is the working directory of the action process and the base for
	// a relative Binary. Required when Binary is relative.
	Dir string

	// SearchPaths are extra directories checked for a bare Binary name.
	SearchPaths []string

	// Timeout bounds a single invocation. Zero means no bridge-imposed
	// limit; the caller's context still applies.
	Timeout time.Duration

	// OutputPrefix is prepended to every non-ping body. Nil selects
	// DefaultOutputPrefix; an empty string disables the prefix.
	OutputPrefix *string

	// MaxOutputBytes caps the captured stdout and stderr, each.
	// Zero selects DefaultMaxOutputBytes.
	MaxOutputBytes int

	// Digest pins the action binary to a hex BLAKE3 digest.
	// If set, construction fails when the binary does not match.
	Digest string

	// InputSchema validates requests before the action is started.
	// If nil, requests are passed through unchecked.
	InputSchema *jsonschema.Schema

	// Hooks are called before the action starts and after the envelope is final.
	Hooks hook.Hooks

	// Runner executes invocations. If nil, the subprocess runner is used.
	Runner Runner
}

// Prefix returns the effective output prefix.
func (o *Options) Prefix() string {
	if o.OutputPrefix == nil {
		return DefaultOutputPrefix
	}

	return *o.OutputPrefix
}

// OutputLimit returns the effective per-stream capture limit.
func (o *Options) OutputLimit() int {
	if o.MaxOutputBytes <= 0 {
		return DefaultMaxOutputBytes
	}

	return o.MaxOutputBytes
}
