// Package hook provides callbacks that observe or gate action invocations.
package hook

import (
	"context"
	"fmt"
	"time"
)

// Event represents the point in an invocation that triggers a hook.
type Event string

const (
	// EventPreInvoke is triggered after the request is encoded and validated,
	// before the action process is started. A callback error rejects the
	// invocation.
	EventPreInvoke Event = "PreInvoke"
	// EventPostInvoke is triggered once the envelope is final. Callback
	// errors are logged and otherwise ignored.
	EventPostInvoke Event = "PostInvoke"
)

// Input is the interface for all hook input types.
type Input interface {
	GetHookEventName() Event
	GetInvocationID() string
	GetAction() string
}

// Compile-time verification that all hook input types implement Input.
var (
	_ Input = (*PreInvokeInput)(nil)
	_ Input = (*PostInvokeInput)(nil)
)

// BaseInput contains common fields for all hook inputs.
type BaseInput struct {
	InvocationID string `json:"invocation_id"`
	Action       string `json:"action"`
}

// GetInvocationID implements Input.
func (b *BaseInput) GetInvocationID() string { return b.InvocationID }

// GetAction implements Input.
func (b *BaseInput) GetAction() string { return b.Action }

// PreInvokeInput is the input for PreInvoke hooks.
type PreInvokeInput struct {
	BaseInput

	// Request is the exact bytes about to be written to the action's stdin.
	Request []byte `json:"request"`
}

// GetHookEventName implements Input.
func (p *PreInvokeInput) GetHookEventName() Event { return EventPreInvoke }

// PostInvokeInput is the input for PostInvoke hooks.
type PostInvokeInput struct {
	BaseInput

	Outcome  string        `json:"outcome"`
	ExitCode int           `json:"exit_code"`
	Body     string        `json:"body"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// GetHookEventName implements Input.
func (p *PostInvokeInput) GetHookEventName() Event { return EventPostInvoke }

// Callback is the function signature for hook callbacks.
type Callback func(ctx context.Context, input Input) error

// Matcher groups callbacks that share a timeout.
type Matcher struct {
	Hooks []Callback

	// Timeout bounds each callback. Zero means no limit beyond the
	// invocation's own context.
	Timeout time.Duration
}

// Hooks maps events to their matchers.
type Hooks map[Event][]*Matcher

// Run calls every callback registered for input's event, in order.
// The first callback error stops the run and is returned. A panicking
// callback is reported as an error.
func (h Hooks) Run(ctx context.Context, input Input) error {
	for _, matcher := range h[input.GetHookEventName()] {
		if matcher == nil {
			continue
		}

		for _, callback := range matcher.Hooks {
			if err := runOne(ctx, matcher.Timeout, callback, input); err != nil {
				return err
			}
		}
	}

	return nil
}

// Has reports whether any callback is registered for event.
func (h Hooks) Has(event Event) bool {
	for _, matcher := range h[event] {
		if matcher != nil && len(matcher.Hooks) > 0 {
			return true
		}
	}

	return false
}

func runOne(ctx context.Context, timeout time.Duration, callback Callback, input Input) (err error) {
	if timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s hook panicked: %v", input.GetHookEventName(), r)
		}
	}()

	return callback(ctx, input)
}
