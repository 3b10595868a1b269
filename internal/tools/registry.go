// Package tools holds the tool registry that sits between the MCP transport
// and the per-service handlers in the *_tools packages.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gworkspace-mcp/internal/logging"
	"github.com/teemow/gworkspace-mcp/internal/server"
	"github.com/teemow/gworkspace-mcp/internal/tools/args"
	"github.com/teemow/gworkspace-mcp/internal/tools/common"
)

// Handler runs a tool against its raw arguments and returns a value that is
// encoded as the JSON result text.
type Handler func(ctx context.Context, a args.Args) (any, error)

// Bind builds a Handler from a parse step producing the typed request R and
// a run step that only ever sees a valid R.
func Bind[R any](parse func(args.Args) (R, error), run func(context.Context, R) (any, error)) Handler {
	return func(ctx context.Context, a args.Args) (any, error) {
		req, err := parse(a)
		if err != nil {
			return nil, err
		}
		return run(ctx, req)
	}
}

// Tool is one entry of the catalogue.
type Tool struct {
	Definition mcp.Tool
	ReadOnly   bool
	Service    string
	Operation  string
	// Action completes the sentence "Error <action>: <cause>".
	Action  string
	Handler Handler
}

// Name returns the tool name.
func (t Tool) Name() string {
	return t.Definition.Name
}

// Registry keeps tools in registration order.
type Registry struct {
	tools  []Tool
	index  map[string]int
	logger *slog.Logger
}

// NewRegistry returns an empty registry. A nil logger means slog.Default().
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{index: make(map[string]int), logger: logger}
}

// Register adds tools. A duplicate or unnamed tool is rejected and nothing
// after it is added.
func (r *Registry) Register(tools ...Tool) error {
	for _, t := range tools {
		name := t.Name()
		if name == "" {
			return errors.New("tool name is required")
		}
		if t.Handler == nil {
			return fmt.Errorf("tool %s has no handler", name)
		}
		if _, ok := r.index[name]; ok {
			return fmt.Errorf("tool %s is already registered", name)
		}
		r.index[name] = len(r.tools)
		r.tools = append(r.tools, t)
	}
	return nil
}

// Tools returns the registered tools in order. With readOnly set only
// read-only tools are returned.
func (r *Registry) Tools(readOnly bool) []Tool {
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		if readOnly && !t.ReadOnly {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Lookup finds a tool by name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	i, ok := r.index[name]
	if !ok {
		return Tool{}, false
	}
	return r.tools[i], true
}

// Dispatch runs the named tool and wraps the outcome in a result with
// exactly one text item. It never returns an error; failures come back with
// IsError set.
func (r *Registry) Dispatch(ctx context.Context, name string, raw map[string]any) *mcp.CallToolResult {
	t, ok := r.Lookup(name)
	if !ok {
		return mcp.NewToolResultError("Unknown tool: " + name)
	}
	return r.run(ctx, t, raw)
}

func (r *Registry) run(ctx context.Context, t Tool, raw map[string]any) (result *mcp.CallToolResult) {
	logger := logging.WithTool(r.logger, t.Name())

	defer func() {
		if p := recover(); p != nil {
			logger.Error("tool panicked", slog.Any("panic", p))
			result = mcp.NewToolResultError(fmt.Sprintf("Error %s: panic: %v", t.Action, p))
		}
	}()

	v, err := t.Handler(ctx, args.Args(raw))
	if err != nil {
		var verr *args.ValidationError
		if errors.As(err, &verr) {
			logger.Debug("invalid arguments", logging.Err(err))
			return mcp.NewToolResultError(verr.Error())
		}
		logger.Warn("tool call failed", logging.Service(t.Service), logging.Operation(t.Operation), logging.Err(err))
		return mcp.NewToolResultError(fmt.Sprintf("Error %s: %v", t.Action, err))
	}

	text, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error %s: failed to encode result: %v", t.Action, err))
	}
	return mcp.NewToolResultText(string(text))
}

// Mount adds the tools to s behind the instrumentation wrapper and returns
// how many were added.
func (r *Registry) Mount(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) int {
	tools := r.Tools(readOnly)
	for _, t := range tools {
		handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return r.run(ctx, t, request.GetArguments()), nil
		}
		s.AddTool(t.Definition, common.InstrumentedToolHandler(t.Name(), t.Service, t.Operation, t.ReadOnly, sc, handler))
	}
	return len(tools)
}
