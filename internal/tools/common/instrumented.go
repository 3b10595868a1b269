package common

import (
	"context"
	"errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gworkspace-mcp/internal/instrumentation"
	"github.com/teemow/gworkspace-mcp/internal/server"
)

// InstrumentedToolHandler wraps handler with a span, tool and Google API
// metrics, and one audit record per call. A result with IsError set counts
// as a failure even though handler returned no error.
//
// Usage:
//
//	s.AddTool(tool, common.InstrumentedToolHandler("drive_search", "drive", "search", true, sc, handler))
func InstrumentedToolHandler(
	toolName string,
	service string,
	operation string,
	readOnly bool,
	sc *server.ServerContext,
	handler mcpserver.ToolHandlerFunc,
) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx, span := instrumentation.StartToolSpan(ctx, toolName,
			instrumentation.ToolAttributes(service, operation, readOnly)...)
		defer span.End()

		start := time.Now()
		invocation := instrumentation.NewToolInvocation(toolName).
			WithService(service, operation).
			WithSpanContext(ctx)

		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		switch {
		case err != nil:
			status = instrumentation.StatusError
			instrumentation.SetSpanError(span, err)
			invocation.Complete(false, err.Error())
		case result != nil && result.IsError:
			status = instrumentation.StatusError
			msg := ResultText(result)
			instrumentation.SetSpanError(span, errors.New(msg))
			invocation.Complete(false, msg)
		default:
			instrumentation.SetSpanSuccess(span)
			invocation.Complete(true, "")
		}

		metrics := sc.Metrics()
		metrics.RecordToolInvocation(ctx, toolName, status, duration)
		metrics.RecordGoogleAPIOperation(ctx, service, operation, status, duration)
		sc.AuditLogger().LogToolInvocation(invocation)

		return result, err
	}
}

// ResultText returns the text of the first content item of result.
func ResultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}
