package docs

import (
	"context"
	"fmt"
	"net/http"

	docs "google.golang.org/api/docs/v1"
	"google.golang.org/api/option"

	"github.com/teemow/gworkspace-mcp/internal/color"
)

// Client wraps the Google Docs API service.
type Client struct {
	service *docs.Service
}

// NewClient creates a Docs client that sends requests through httpClient.
func NewClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := docs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docs service: %w", err)
	}
	return &Client{service: svc}, nil
}

// CreateDocument creates a document and, when content is non-empty, inserts
// it at the start of the body.
func (c *Client) CreateDocument(ctx context.Context, title, content string) (*DocumentRef, error) {
	doc, err := c.service.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create document %q: %w", title, err)
	}

	if content != "" {
		if err := c.InsertText(ctx, doc.DocumentId, content, 1); err != nil {
			return nil, err
		}
	}

	return &DocumentRef{
		DocumentID: doc.DocumentId,
		Title:      doc.Title,
		URL:        DocumentURL(doc.DocumentId),
	}, nil
}

// GetDocument fetches a document with the content of every tab.
func (c *Client) GetDocument(ctx context.Context, documentID string) (*docs.Document, error) {
	doc, err := c.service.Documents.Get(documentID).
		Context(ctx).
		IncludeTabsContent(true).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}
	return doc, nil
}

// InsertText inserts text at a body index. Index 1 is the start of the body.
func (c *Client) InsertText(ctx context.Context, documentID, text string, index int64) error {
	_, err := c.batchUpdate(ctx, documentID, &docs.Request{
		InsertText: &docs.InsertTextRequest{
			Text:     text,
			Location: &docs.Location{Index: index},
		},
	})
	return err
}

// AppendText inserts text at the end of the body.
func (c *Client) AppendText(ctx context.Context, documentID, text string) error {
	_, err := c.batchUpdate(ctx, documentID, &docs.Request{
		InsertText: &docs.InsertTextRequest{
			Text:                 text,
			EndOfSegmentLocation: &docs.EndOfSegmentLocation{},
		},
	})
	return err
}

// ReplaceAllText replaces every occurrence of find and returns the count.
func (c *Client) ReplaceAllText(ctx context.Context, documentID, find, replace string, matchCase bool) (int64, error) {
	resp, err := c.batchUpdate(ctx, documentID, &docs.Request{
		ReplaceAllText: &docs.ReplaceAllTextRequest{
			ContainsText: &docs.SubstringMatchCriteria{
				Text:            find,
				MatchCase:       matchCase,
				ForceSendFields: []string{"MatchCase"},
			},
			ReplaceText:     replace,
			ForceSendFields: []string{"ReplaceText"},
		},
	})
	if err != nil {
		return 0, err
	}

	var occurrences int64
	for _, reply := range resp.Replies {
		if reply != nil && reply.ReplaceAllText != nil {
			occurrences += reply.ReplaceAllText.OccurrencesChanged
		}
	}
	return occurrences, nil
}

// FormatText applies a partial text style to [start, end).
func (c *Client) FormatText(ctx context.Context, documentID string, start, end int64, format TextFormat) error {
	style, fields, err := textStyle(format)
	if err != nil {
		return err
	}

	_, err = c.batchUpdate(ctx, documentID, &docs.Request{
		UpdateTextStyle: &docs.UpdateTextStyleRequest{
			Range:     &docs.Range{StartIndex: start, EndIndex: end},
			TextStyle: style,
			Fields:    fields,
		},
	})
	return err
}

// SetHeading applies a named paragraph style to the paragraphs overlapping [start, end).
func (c *Client) SetHeading(ctx context.Context, documentID string, start, end int64, namedStyle string) error {
	_, err := c.batchUpdate(ctx, documentID, &docs.Request{
		UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
			Range:          &docs.Range{StartIndex: start, EndIndex: end},
			ParagraphStyle: &docs.ParagraphStyle{NamedStyleType: namedStyle},
			Fields:         "namedStyleType",
		},
	})
	return err
}

func (c *Client) batchUpdate(ctx context.Context, documentID string, requests ...*docs.Request) (*docs.BatchUpdateDocumentResponse, error) {
	resp, err := c.service.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update document %s: %w", documentID, err)
	}
	return resp, nil
}

// textStyle converts a TextFormat to the API style and its field mask.
// Explicit false values are force-sent so they clear the attribute.
func textStyle(format TextFormat) (*docs.TextStyle, string, error) {
	style := &docs.TextStyle{}
	var mask fieldMask

	if format.Bold != nil {
		style.Bold = *format.Bold
		style.ForceSendFields = append(style.ForceSendFields, "Bold")
		mask.add("bold")
	}
	if format.Italic != nil {
		style.Italic = *format.Italic
		style.ForceSendFields = append(style.ForceSendFields, "Italic")
		mask.add("italic")
	}
	if format.Underline != nil {
		style.Underline = *format.Underline
		style.ForceSendFields = append(style.ForceSendFields, "Underline")
		mask.add("underline")
	}
	if format.FontSize != nil {
		style.FontSize = &docs.Dimension{Magnitude: *format.FontSize, Unit: "PT"}
		mask.add("fontSize")
	}
	if format.ForegroundColor != "" {
		rgb, err := color.ParseHex(format.ForegroundColor)
		if err != nil {
			return nil, "", err
		}
		style.ForegroundColor = &docs.OptionalColor{
			Color: &docs.Color{
				RgbColor: &docs.RgbColor{
					Red:             rgb.Red,
					Green:           rgb.Green,
					Blue:            rgb.Blue,
					ForceSendFields: []string{"Red", "Green", "Blue"},
				},
			},
		}
		mask.add("foregroundColor")
	}

	if mask.empty() {
		return nil, "", fmt.Errorf("no text style fields to update")
	}
	return style, mask.String(), nil
}
