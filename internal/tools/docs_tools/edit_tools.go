package docs_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/gworkspace-mcp/internal/color"
	"github.com/teemow/gworkspace-mcp/internal/docs"
	"github.com/teemow/gworkspace-mcp/internal/tools/args"
)

func documentIDParam() mcp.ToolOption {
	return mcp.WithString("documentId",
		mcp.Required(),
		mcp.Description("ID of the document"),
	)
}

func rangeParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("startIndex",
			mcp.Required(),
			mcp.Description("Start of the range, inclusive (the body starts at 1)"),
		),
		mcp.WithNumber("endIndex",
			mcp.Required(),
			mcp.Description("End of the range, exclusive"),
		),
	}
}

func insertTextTool() mcp.Tool {
	return mcp.NewTool("docs_insert_text",
		mcp.WithDescription("Insert text at a position in the body"),
		documentIDParam(),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to insert"),
		),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Description("Position to insert at (the body starts at 1)"),
		),
	)
}

func appendTextTool() mcp.Tool {
	return mcp.NewTool("docs_append_text",
		mcp.WithDescription("Append text to the end of the body"),
		documentIDParam(),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to append"),
		),
	)
}

func replaceTextTool() mcp.Tool {
	return mcp.NewTool("docs_replace_text",
		mcp.WithDescription("Replace every occurrence of a string"),
		documentIDParam(),
		mcp.WithString("find",
			mcp.Required(),
			mcp.Description("Text to find"),
		),
		mcp.WithString("replace",
			mcp.Required(),
			mcp.Description("Replacement text, may be empty"),
		),
		mcp.WithBoolean("matchCase",
			mcp.Description("Match case (default: true)"),
			mcp.DefaultBool(true),
		),
	)
}

func formatTextTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Change the character style of a range. Only the given style fields change."),
		documentIDParam(),
	}
	opts = append(opts, rangeParams()...)
	opts = append(opts,
		mcp.WithBoolean("bold", mcp.Description("Bold")),
		mcp.WithBoolean("italic", mcp.Description("Italic")),
		mcp.WithBoolean("underline", mcp.Description("Underline")),
		mcp.WithNumber("fontSize", mcp.Description("Font size in points")),
		mcp.WithString("foregroundColor", mcp.Description("Text color as #RRGGBB")),
	)
	return mcp.NewTool("docs_format_text", opts...)
}

func setHeadingTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Apply a paragraph style such as HEADING_1 to the paragraphs in a range"),
		documentIDParam(),
	}
	opts = append(opts, rangeParams()...)
	opts = append(opts,
		mcp.WithString("heading",
			mcp.Required(),
			mcp.Description("Paragraph style"),
			mcp.Enum(docs.NamedStyles...),
		),
	)
	return mcp.NewTool("docs_set_heading", opts...)
}

func docIndex(a args.Args, field string) (int64, error) {
	n, err := a.Int(field)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, &args.ValidationError{Field: field, Expected: "integer of at least 1"}
	}
	return n, nil
}

type textRange struct {
	Start int64
	End   int64
}

func parseRange(a args.Args) (textRange, error) {
	var r textRange
	var err error
	if r.Start, err = docIndex(a, "startIndex"); err != nil {
		return r, err
	}
	if r.End, err = docIndex(a, "endIndex"); err != nil {
		return r, err
	}
	if r.End <= r.Start {
		return r, &args.ValidationError{Field: "endIndex", Expected: "integer greater than startIndex"}
	}
	return r, nil
}

type insertTextRequest struct {
	DocumentID string
	Text       string
	Index      int64
}

func parseInsertText(a args.Args) (insertTextRequest, error) {
	var req insertTextRequest
	var err error
	if req.DocumentID, err = a.String("documentId"); err != nil {
		return req, err
	}
	if req.Text, err = a.String("text"); err != nil {
		return req, err
	}
	if req.Index, err = docIndex(a, "index"); err != nil {
		return req, err
	}
	return req, nil
}

type editResult struct {
	DocumentID string `json:"documentId"`
	Updated    bool   `json:"updated"`
}

func (h *handlers) insertText(ctx context.Context, req insertTextRequest) (any, error) {
	if err := h.api.InsertText(ctx, req.DocumentID, req.Text, req.Index); err != nil {
		return nil, err
	}
	return editResult{DocumentID: req.DocumentID, Updated: true}, nil
}

type appendTextRequest struct {
	DocumentID string
	Text       string
}

func parseAppendText(a args.Args) (appendTextRequest, error) {
	var req appendTextRequest
	var err error
	if req.DocumentID, err = a.String("documentId"); err != nil {
		return req, err
	}
	if req.Text, err = a.String("text"); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handlers) appendText(ctx context.Context, req appendTextRequest) (any, error) {
	if err := h.api.AppendText(ctx, req.DocumentID, req.Text); err != nil {
		return nil, err
	}
	return editResult{DocumentID: req.DocumentID, Updated: true}, nil
}

type replaceTextRequest struct {
	DocumentID string
	Find       string
	Replace    string
	MatchCase  bool
}

func parseReplaceText(a args.Args) (replaceTextRequest, error) {
	var req replaceTextRequest
	var err error
	if req.DocumentID, err = a.String("documentId"); err != nil {
		return req, err
	}
	if req.Find, err = a.String("find"); err != nil {
		return req, err
	}
	if req.Replace, err = a.Text("replace"); err != nil {
		return req, err
	}
	if req.MatchCase, err = a.OptionalBool("matchCase", true); err != nil {
		return req, err
	}
	return req, nil
}

type replaceResult struct {
	DocumentID  string `json:"documentId"`
	Occurrences int64  `json:"occurrencesChanged"`
}

func (h *handlers) replaceText(ctx context.Context, req replaceTextRequest) (any, error) {
	n, err := h.api.ReplaceAllText(ctx, req.DocumentID, req.Find, req.Replace, req.MatchCase)
	if err != nil {
		return nil, err
	}
	return replaceResult{DocumentID: req.DocumentID, Occurrences: n}, nil
}

type formatTextRequest struct {
	DocumentID string
	Range      textRange
	Format     docs.TextFormat
}

func parseFormatText(a args.Args) (formatTextRequest, error) {
	var req formatTextRequest
	var err error
	if req.DocumentID, err = a.String("documentId"); err != nil {
		return req, err
	}
	if req.Range, err = parseRange(a); err != nil {
		return req, err
	}

	f := &req.Format
	if f.Bold, err = a.OptionalBoolPtr("bold"); err != nil {
		return req, err
	}
	if f.Italic, err = a.OptionalBoolPtr("italic"); err != nil {
		return req, err
	}
	if f.Underline, err = a.OptionalBoolPtr("underline"); err != nil {
		return req, err
	}
	if f.FontSize, err = a.OptionalFloatPtr("fontSize"); err != nil {
		return req, err
	}
	if f.FontSize != nil && *f.FontSize <= 0 {
		return req, &args.ValidationError{Field: "fontSize", Expected: "positive number"}
	}
	if f.ForegroundColor, err = a.OptionalString("foregroundColor", ""); err != nil {
		return req, err
	}
	if f.ForegroundColor != "" {
		if _, err := color.ParseHex(f.ForegroundColor); err != nil {
			return req, &args.ValidationError{Field: "foregroundColor", Expected: "hex color #RRGGBB"}
		}
	}

	if f.IsEmpty() {
		return req, &args.ValidationError{Field: "style", Expected: "at least one of bold, italic, underline, fontSize, foregroundColor"}
	}
	return req, nil
}

func (h *handlers) formatText(ctx context.Context, req formatTextRequest) (any, error) {
	if err := h.api.FormatText(ctx, req.DocumentID, req.Range.Start, req.Range.End, req.Format); err != nil {
		return nil, err
	}
	return editResult{DocumentID: req.DocumentID, Updated: true}, nil
}

type setHeadingRequest struct {
	DocumentID string
	Range      textRange
	Heading    string
}

func parseSetHeading(a args.Args) (setHeadingRequest, error) {
	var req setHeadingRequest
	var err error
	if req.DocumentID, err = a.String("documentId"); err != nil {
		return req, err
	}
	if req.Range, err = parseRange(a); err != nil {
		return req, err
	}
	if req.Heading, err = a.Enum("heading", docs.NamedStyles); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handlers) setHeading(ctx context.Context, req setHeadingRequest) (any, error) {
	if err := h.api.SetHeading(ctx, req.DocumentID, req.Range.Start, req.Range.End, req.Heading); err != nil {
		return nil, err
	}
	return editResult{DocumentID: req.DocumentID, Updated: true}, nil
}
