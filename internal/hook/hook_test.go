package hook

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func preInput() *PreInvokeInput {
	return &PreInvokeInput{
		BaseInput: BaseInput{InvocationID: "01J0000000000000000000000", Action: "add"},
		Request:   []byte(`{}`),
	}
}

func TestHooks_RunInOrderAndStopOnError(t *testing.T) {
	var calls []string

	errStop := errors.New("stop")

	hooks := Hooks{
		EventPreInvoke: {
			{Hooks: []Callback{
				func(context.Context, Input) error {
					calls = append(calls, "first")

					return nil
				},
				func(context.Context, Input) error {
					calls = append(calls, "second")

					return errStop
				},
			}},
			{Hooks: []Callback{
				func(context.Context, Input) error {
					calls = append(calls, "third")

					return nil
				},
			}},
		},
	}

	err := hooks.Run(context.Background(), preInput())
	require.ErrorIs(t, err, errStop)
	require.Equal(t, []string{"first", "second"}, calls)
}

func TestHooks_OnlyMatchingEvent(t *testing.T) {
	called := false

	hooks := Hooks{
		EventPostInvoke: {{Hooks: []Callback{
			func(context.Context, Input) error {
				called = true

				return nil
			},
		}}},
	}

	require.NoError(t, hooks.Run(context.Background(), preInput()))
	require.False(t, called)
	require.True(t, hooks.Has(EventPostInvoke))
	require.False(t, hooks.Has(EventPreInvoke))
}

func TestHooks_NilAndEmpty(t *testing.T) {
	var hooks Hooks

	require.NoError(t, hooks.Run(context.Background(), preInput()))
	require.False(t, hooks.Has(EventPreInvoke))

	hooks = Hooks{EventPreInvoke: {nil, {}}}
	require.NoError(t, hooks.Run(context.Background(), preInput()))
	require.False(t, hooks.Has(EventPreInvoke))
}

func TestHooks_PanicBecomesError(t *testing.T) {
	hooks := Hooks{
		EventPreInvoke: {{Hooks: []Callback{
			func(context.Context, Input) error { panic("bad hook") },
		}}},
	}

	err := hooks.Run(context.Background(), preInput())
	require.Error(t, err)
	require.Contains(t, err.Error(), "PreInvoke hook panicked: bad hook")
}

func TestHooks_Timeout(t *testing.T) {
	hooks := Hooks{
		EventPreInvoke: {{
			Timeout: 20 * time.Millisecond,
			Hooks: []Callback{func(ctx context.Context, _ Input) error {
				<-ctx.Done()

				return ctx.Err()
			}},
		}},
	}

	err := hooks.Run(context.Background(), preInput())
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestInputs(t *testing.T) {
	pre := preInput()
	require.Equal(t, EventPreInvoke, pre.GetHookEventName())
	require.Equal(t, "add", pre.GetAction())
	require.Equal(t, "01J0000000000000000000000", pre.GetInvocationID())

	post := &PostInvokeInput{BaseInput: BaseInput{Action: "add"}, Outcome: "success"}
	require.Equal(t, EventPostInvoke, post.GetHookEventName())
}
