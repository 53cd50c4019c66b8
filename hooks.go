package actionbridge

import "github.com/wagiedev/action-bridge-go/internal/hook"

// Re-export hook types from internal package

// HookEvent represents the point in an invocation that triggers a hook.
type HookEvent = hook.Event

const (
	// HookEventPreInvoke runs before the action starts. A callback error
	// rejects the invocation.
	HookEventPreInvoke = hook.EventPreInvoke
	// HookEventPostInvoke runs once the envelope is final.
	HookEventPostInvoke = hook.EventPostInvoke
)

// HookInput is the interface for all hook input types.
type HookInput = hook.Input

// PreInvokeHookInput is the input for PreInvoke hooks.
type PreInvokeHookInput = hook.PreInvokeInput

// PostInvokeHookInput is the input for PostInvoke hooks.
type PostInvokeHookInput = hook.PostInvokeInput

// HookCallback is the function signature for hook callbacks.
type HookCallback = hook.Callback

// HookMatcher groups callbacks that share a timeout.
type HookMatcher = hook.Matcher

// WithHooks registers invocation hooks.
//
// Example:
//
//	actionbridge.WithHooks(map[actionbridge.HookEvent][]*actionbridge.HookMatcher{
//	    actionbridge.HookEventPostInvoke: {{
//	        Hooks: []actionbridge.HookCallback{recordMetrics},
//	    }},
//	})
func WithHooks(hooks map[HookEvent][]*HookMatcher) Option {
	return func(o *BridgeOptions) {
		o.Hooks = hooks
	}
}
