package mcp

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/action-bridge-go/internal/bridge"
	"github.com/wagiedev/action-bridge-go/internal/codec"
)

// Action is the part of a bridge the server needs.
type Action interface {
	Name() string
	Description() string
	InputSchema() *jsonschema.Schema
	Execute(ctx context.Context, request any) *bridge.Result
}

// Compile-time verification that Bridge satisfies Action.
var _ Action = (*bridge.Bridge)(nil)

// Server serves a single action over MCP.
type Server struct {
	log    *slog.Logger
	action Action
	server *mcp.Server
}

// NewServer creates an MCP server exposing action as a tool.
// It fails if the action's input schema does not describe an object.
func NewServer(log *slog.Logger, action Action, version string) (*Server, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	schema, err := toolSchema(action.InputSchema())
	if err != nil {
		return nil, err
	}

	s := &Server{
		log:    log.With("component", "mcp_server"),
		action: action,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "actionbridge-" + action.Name(),
			Version: version,
		}, nil),
	}

	s.server.AddTool(NewTool(action.Name(), action.Description(), schema), s.handleCall)

	return s, nil
}

// Serve runs the server on transport until the peer disconnects or ctx is done.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	s.log.Info("Serving action over MCP", "tool", s.action.Name())

	return s.server.Run(ctx, transport)
}

// ServeStdio runs the server on the process's standard streams.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.Serve(ctx, &mcp.StdioTransport{})
}

// Connect attaches the server to transport and returns without blocking.
func (s *Server) Connect(ctx context.Context, transport mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, transport, nil)
}

// handleCall runs one invocation for a tool call.
func (s *Server) handleCall(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	request, err := ParseArguments(req)
	if err != nil {
		s.log.Debug("Rejecting tool call with unparseable arguments", "error", err)

		return ErrorResult(err.Error()), nil
	}

	result := s.action.Execute(ctx, request)

	s.log.Debug("Tool call finished",
		"invocation_id", result.ID,
		"outcome", result.Outcome,
	)

	text := string(codec.EncodeEnvelope(result.Envelope))
	if !result.OK() {
		return ErrorResult(text), nil
	}

	return TextResult(text), nil
}

// toolSchema returns the schema advertised for the tool. Tool inputs are
// always objects, so an untyped schema is narrowed to one.
func toolSchema(schema *jsonschema.Schema) (*jsonschema.Schema, error) {
	if schema == nil {
		return &jsonschema.Schema{Type: "object"}, nil
	}

	switch schema.Type {
	case "object":
		return schema, nil
	case "":
		narrowed := *schema
		narrowed.Type = "object"

		return &narrowed, nil
	default:
		return nil, fmt.Errorf("tool input schema must describe an object, got type %q", schema.Type)
	}
}

// TextResult creates a CallToolResult with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// ErrorResult creates a CallToolResult indicating an error.
func ErrorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
		IsError: true,
	}
}

// NewTool creates an mcp.Tool with the given parameters.
func NewTool(name, description string, inputSchema *jsonschema.Schema) *mcp.Tool {
	return &mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: inputSchema,
	}
}

// ParseArguments decodes CallToolRequest arguments into a request.
// Missing arguments yield an empty object. Numbers keep their literal text.
func ParseArguments(req *mcp.CallToolRequest) (map[string]any, error) {
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return make(map[string]any), nil
	}

	args, err := codec.DecodeObject(req.Params.Arguments)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal arguments: %w", err)
	}

	return args, nil
}
