//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/require"

	actionbridge "github.com/wagiedev/action-bridge-go"
)

func newAddBridge(t *testing.T, opts ...actionbridge.Option) *actionbridge.Bridge {
	t.Helper()

	opts = append([]actionbridge.Option{
		actionbridge.WithBinary(addActionPath),
		actionbridge.WithTimeout(10 * time.Second),
	}, opts...)

	b, err := actionbridge.New(context.Background(), opts...)
	require.NoError(t, err)

	return b
}

// decodeBody strips the prefix and decodes the action's JSON output.
func decodeBody(t *testing.T, body string) map[string]any {
	t.Helper()

	require.True(t, strings.HasPrefix(body, actionbridge.DefaultOutputPrefix), "body %q", body)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(body, actionbridge.DefaultOutputPrefix)), &out))

	return out
}

func TestAddAction_Success(t *testing.T) {
	b := newAddBridge(t)

	result := b.Execute(context.Background(), map[string]any{"param1": 1, "param2": 2})
	require.Equal(t, actionbridge.OutcomeSuccess, result.Outcome)
	require.Equal(t, 0, result.ExitCode)
	require.Equal(t, float64(3), decodeBody(t, result.Envelope.Body)["result"])
}

func TestAddAction_MissingParam(t *testing.T) {
	b := newAddBridge(t)

	result := b.Execute(context.Background(), map[string]any{"param1": 1})
	require.Equal(t, actionbridge.OutcomeChildFailure, result.Outcome)
	require.Equal(t, 1, result.ExitCode)
	require.Equal(t,
		actionbridge.DefaultOutputPrefix+"Binary exited with error: param1 and param2 are required\n",
		result.Envelope.Body)
}

func TestAddAction_Ping(t *testing.T) {
	b := newAddBridge(t)

	env := b.Invoke(context.Background(), map[string]any{"ping": true})
	require.Equal(t, `{"body":"pong"}`, string(actionbridge.EncodeEnvelope(env)))
}

func TestAddAction_SchemaRejectsBeforeSpawn(t *testing.T) {
	b := newAddBridge(t, actionbridge.WithInputSchema(&jsonschema.Schema{
		Type:     "object",
		Required: []string{"param1", "param2"},
	}))

	result := b.Execute(context.Background(), map[string]any{"param1": 1})
	require.Equal(t, actionbridge.OutcomeInvalidInput, result.Outcome)
	require.Nil(t, result.Stdout)
	require.Nil(t, result.Stderr)
}

func TestAddAction_InvokeAll(t *testing.T) {
	b := newAddBridge(t)

	requests := make([]any, 20)
	for i := range requests {
		requests[i] = map[string]any{"param1": i, "param2": 1}
	}

	for i, env := range actionbridge.InvokeAll(context.Background(), b, requests, 8) {
		require.Equal(t, float64(i+1), decodeBody(t, env.Body)["result"])
	}
}

func TestAddAction_DigestPinned(t *testing.T) {
	digest, err := actionbridge.FileDigest(addActionPath)
	require.NoError(t, err)

	b := newAddBridge(t, actionbridge.WithDigest(strings.ToUpper(digest)))

	env := b.Invoke(context.Background(), map[string]any{"param1": 2, "param2": 2})
	require.Equal(t, float64(4), decodeBody(t, env.Body)["result"])
}

func TestAddAction_RejectsNonInteger(t *testing.T) {
	b := newAddBridge(t)

	result := b.Execute(context.Background(), map[string]any{"param1": 1.5, "param2": 2})
	require.Equal(t, actionbridge.OutcomeChildFailure, result.Outcome)
	require.Contains(t, result.Envelope.Body, "Binary exited with error: param1 must be an integer")
}

func TestAddAction_ExactBeyondFloatPrecision(t *testing.T) {
	b := newAddBridge(t)

	// 2^53 + 1 is not representable as a float64.
	request, err := actionbridge.DecodeRequest([]byte(`{"param1": 9007199254740993, "param2": 1}`))
	require.NoError(t, err)

	env := b.Invoke(context.Background(), request)

	out, err := actionbridge.DecodeRequest([]byte(strings.TrimPrefix(env.Body, actionbridge.DefaultOutputPrefix)))
	require.NoError(t, err)
	require.Equal(t, json.Number("9007199254740994"), out["result"])
}

func TestAddAction_RejectsOverflow(t *testing.T) {
	b := newAddBridge(t)

	request, err := actionbridge.DecodeRequest([]byte(`{"param1": 9223372036854775807, "param2": 1}`))
	require.NoError(t, err)

	result := b.Execute(context.Background(), request)
	require.Equal(t, actionbridge.OutcomeChildFailure, result.Outcome)
	require.Contains(t, result.Envelope.Body, "overflows")
}
