package docs_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/gworkspace-mcp/internal/docs"
	"github.com/teemow/gworkspace-mcp/internal/tools/args"
)

func createDocumentTool() mcp.Tool {
	return mcp.NewTool("docs_create_document",
		mcp.WithDescription("Create a Google Doc, optionally with initial text"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title of the document"),
		),
		mcp.WithString("content",
			mcp.Description("Initial plain text of the body"),
		),
	)
}

func getDocumentTool() mcp.Tool {
	return mcp.NewTool("docs_get_document",
		mcp.WithDescription("Read a Google Doc including all of its tabs"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("ID of the document"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: text, markdown, or json for the raw API structure (default: text)"),
			mcp.Enum(docs.Formats...),
			mcp.DefaultString(docs.FormatText),
		),
	)
}

type createDocumentRequest struct {
	Title   string
	Content string
}

func parseCreateDocument(a args.Args) (createDocumentRequest, error) {
	var req createDocumentRequest
	var err error
	if req.Title, err = a.String("title"); err != nil {
		return req, err
	}
	if req.Content, err = a.OptionalString("content", ""); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handlers) createDocument(ctx context.Context, req createDocumentRequest) (any, error) {
	return h.api.CreateDocument(ctx, req.Title, req.Content)
}

type getDocumentRequest struct {
	DocumentID string
	Format     string
}

func parseGetDocument(a args.Args) (getDocumentRequest, error) {
	var req getDocumentRequest
	var err error
	if req.DocumentID, err = a.String("documentId"); err != nil {
		return req, err
	}
	if req.Format, err = a.OptionalEnum("format", docs.FormatText, docs.Formats); err != nil {
		return req, err
	}
	return req, nil
}

type documentContent struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	Format     string `json:"format"`
	Content    string `json:"content"`
}

func (h *handlers) getDocument(ctx context.Context, req getDocumentRequest) (any, error) {
	doc, err := h.api.GetDocument(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}
	if req.Format == docs.FormatJSON {
		return doc, nil
	}

	content, err := docs.Render(doc, req.Format)
	if err != nil {
		return nil, err
	}
	return documentContent{
		DocumentID: doc.DocumentId,
		Title:      doc.Title,
		Format:     req.Format,
		Content:    content,
	}, nil
}
