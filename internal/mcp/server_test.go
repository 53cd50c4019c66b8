package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	mcpgo "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/action-bridge-go/internal/bridge"
	"github.com/wagiedev/action-bridge-go/internal/codec"
)

// fakeAction answers every request with a canned result and records the request.
type fakeAction struct {
	schema  *jsonschema.Schema
	result  *bridge.Result
	request any
}

func (f *fakeAction) Name() string                    { return "add" }
func (f *fakeAction) Description() string             { return "adds two numbers" }
func (f *fakeAction) InputSchema() *jsonschema.Schema { return f.schema }

func (f *fakeAction) Execute(_ context.Context, request any) *bridge.Result {
	f.request = request

	return f.result
}

func callRequest(args string) *mcpgo.CallToolRequest {
	return &mcpgo.CallToolRequest{
		Params: &mcpgo.CallToolParamsRaw{
			Name:      "add",
			Arguments: json.RawMessage(args),
		},
	}
}

func textOf(t *testing.T, result *mcpgo.CallToolResult) string {
	t.Helper()

	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(*mcpgo.TextContent)
	require.True(t, ok)

	return text.Text
}

func TestHandleCall_Success(t *testing.T) {
	action := &fakeAction{result: &bridge.Result{
		Outcome:  bridge.OutcomeSuccess,
		Envelope: codec.Envelope{Body: "Mobilenet output:\n{\"result\":3}"},
	}}

	s, err := NewServer(nil, action, "test")
	require.NoError(t, err)

	result, err := s.handleCall(context.Background(), callRequest(`{"param1":1,"param2":2}`))
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.JSONEq(t, `{"body":"Mobilenet output:\n{\"result\":3}"}`, textOf(t, result))

	request, ok := action.request.(map[string]any)
	require.True(t, ok)
	require.Equal(t, json.Number("1"), request["param1"])
}

func TestHandleCall_FailureSetsIsError(t *testing.T) {
	action := &fakeAction{result: &bridge.Result{
		Outcome:  bridge.OutcomeChildFailure,
		Envelope: codec.Envelope{Body: "Mobilenet output:\nBinary exited with error: boom"},
	}}

	s, err := NewServer(nil, action, "test")
	require.NoError(t, err)

	result, err := s.handleCall(context.Background(), callRequest(`{}`))
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Contains(t, textOf(t, result), "Binary exited with error: boom")
}

func TestHandleCall_BadArguments(t *testing.T) {
	action := &fakeAction{}

	s, err := NewServer(nil, action, "test")
	require.NoError(t, err)

	result, err := s.handleCall(context.Background(), callRequest(`[1,2]`))
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Nil(t, action.request)
}

func TestParseArguments(t *testing.T) {
	t.Run("nil request yields empty object", func(t *testing.T) {
		args, err := ParseArguments(nil)
		require.NoError(t, err)
		require.Empty(t, args)
	})

	t.Run("empty arguments yield empty object", func(t *testing.T) {
		args, err := ParseArguments(callRequest(""))
		require.NoError(t, err)
		require.Empty(t, args)
	})

	t.Run("object arguments are decoded", func(t *testing.T) {
		args, err := ParseArguments(callRequest(`{"ping":true}`))
		require.NoError(t, err)
		require.Equal(t, true, args["ping"])
	})
}

func TestToolSchema(t *testing.T) {
	schema, err := toolSchema(nil)
	require.NoError(t, err)
	require.Equal(t, "object", schema.Type)

	untyped := &jsonschema.Schema{Required: []string{"param1"}}
	schema, err = toolSchema(untyped)
	require.NoError(t, err)
	require.Equal(t, "object", schema.Type)
	require.Equal(t, []string{"param1"}, schema.Required)
	require.Empty(t, untyped.Type)

	_, err = toolSchema(&jsonschema.Schema{Type: "array"})
	require.Error(t, err)

	_, err = NewServer(nil, &fakeAction{schema: &jsonschema.Schema{Type: "string"}}, "test")
	require.Error(t, err)
}

func TestServer_InMemorySession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	action := &fakeAction{result: &bridge.Result{
		Outcome:  bridge.OutcomePong,
		Envelope: codec.Envelope{Body: bridge.PongBody},
	}}

	s, err := NewServer(nil, action, "test")
	require.NoError(t, err)

	serverTransport, clientTransport := mcpgo.NewInMemoryTransports()

	serverSession, err := s.Connect(ctx, serverTransport)
	require.NoError(t, err)

	defer serverSession.Close()

	client := mcpgo.NewClient(&mcpgo.Implementation{Name: "test-client", Version: "test"}, nil)

	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	defer clientSession.Close()

	tools, err := clientSession.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 1)
	require.Equal(t, "add", tools.Tools[0].Name)
	require.Equal(t, "adds two numbers", tools.Tools[0].Description)

	result, err := clientSession.CallTool(ctx, &mcpgo.CallToolParams{
		Name:      "add",
		Arguments: map[string]any{"ping": true},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.JSONEq(t, `{"body":"pong"}`, textOf(t, result))
}
