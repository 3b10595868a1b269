package docs_tools

import (
	"context"

	gdocs "google.golang.org/api/docs/v1"

	"github.com/teemow/gworkspace-mcp/internal/docs"
	"github.com/teemow/gworkspace-mcp/internal/instrumentation"
	"github.com/teemow/gworkspace-mcp/internal/tools"
)

// API is the part of *docs.Client the tools use.
type API interface {
	CreateDocument(ctx context.Context, title, content string) (*docs.DocumentRef, error)
	GetDocument(ctx context.Context, documentID string) (*gdocs.Document, error)
	InsertText(ctx context.Context, documentID, text string, index int64) error
	AppendText(ctx context.Context, documentID, text string) error
	ReplaceAllText(ctx context.Context, documentID, find, replace string, matchCase bool) (int64, error)
	FormatText(ctx context.Context, documentID string, start, end int64, format docs.TextFormat) error
	SetHeading(ctx context.Context, documentID string, start, end int64, namedStyle string) error
}

type handlers struct {
	api API
}

// Tools returns the Docs catalogue.
func Tools(api API) []tools.Tool {
	h := &handlers{api: api}
	return []tools.Tool{
		{
			Definition: createDocumentTool(),
			Service:    instrumentation.ServiceDocs,
			Operation:  instrumentation.OperationCreate,
			Action:     "creating document",
			Handler:    tools.Bind(parseCreateDocument, h.createDocument),
		},
		{
			Definition: getDocumentTool(),
			ReadOnly:   true,
			Service:    instrumentation.ServiceDocs,
			Operation:  instrumentation.OperationGet,
			Action:     "getting document",
			Handler:    tools.Bind(parseGetDocument, h.getDocument),
		},
		{
			Definition: insertTextTool(),
			Service:    instrumentation.ServiceDocs,
			Operation:  instrumentation.OperationUpdate,
			Action:     "inserting text",
			Handler:    tools.Bind(parseInsertText, h.insertText),
		},
		{
			Definition: appendTextTool(),
			Service:    instrumentation.ServiceDocs,
			Operation:  instrumentation.OperationUpdate,
			Action:     "appending text",
			Handler:    tools.Bind(parseAppendText, h.appendText),
		},
		{
			Definition: replaceTextTool(),
			Service:    instrumentation.ServiceDocs,
			Operation:  instrumentation.OperationUpdate,
			Action:     "replacing text",
			Handler:    tools.Bind(parseReplaceText, h.replaceText),
		},
		{
			Definition: formatTextTool(),
			Service:    instrumentation.ServiceDocs,
			Operation:  instrumentation.OperationUpdate,
			Action:     "formatting text",
			Handler:    tools.Bind(parseFormatText, h.formatText),
		},
		{
			Definition: setHeadingTool(),
			Service:    instrumentation.ServiceDocs,
			Operation:  instrumentation.OperationUpdate,
			Action:     "setting heading",
			Handler:    tools.Bind(parseSetHeading, h.setHeading),
		},
	}
}
