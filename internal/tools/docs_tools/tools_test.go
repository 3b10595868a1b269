package docs_tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gdocs "google.golang.org/api/docs/v1"

	"github.com/teemow/gworkspace-mcp/internal/docs"
	"github.com/teemow/gworkspace-mcp/internal/tools"
	"github.com/teemow/gworkspace-mcp/internal/tools/common"
)

type fakeDocs struct {
	calls     []string
	format    docs.TextFormat
	matchCase bool
	err       error
}

func (f *fakeDocs) CreateDocument(_ context.Context, title, content string) (*docs.DocumentRef, error) {
	f.calls = append(f.calls, "create "+title+"|"+content)
	if f.err != nil {
		return nil, f.err
	}
	return &docs.DocumentRef{DocumentID: "doc1", Title: title, URL: docs.DocumentURL("doc1")}, nil
}

func (f *fakeDocs) GetDocument(_ context.Context, id string) (*gdocs.Document, error) {
	f.calls = append(f.calls, "get "+id)
	if f.err != nil {
		return nil, f.err
	}
	return &gdocs.Document{
		DocumentId: id,
		Title:      "Notes",
		Body: &gdocs.Body{Content: []*gdocs.StructuralElement{
			{Paragraph: &gdocs.Paragraph{Elements: []*gdocs.ParagraphElement{
				{TextRun: &gdocs.TextRun{Content: "Hello world\n"}},
			}}},
		}},
	}, nil
}

func (f *fakeDocs) InsertText(_ context.Context, id, text string, index int64) error {
	f.calls = append(f.calls, "insert "+id+"|"+text)
	return f.err
}

func (f *fakeDocs) AppendText(_ context.Context, id, text string) error {
	f.calls = append(f.calls, "append "+id+"|"+text)
	return f.err
}

func (f *fakeDocs) ReplaceAllText(_ context.Context, id, find, replace string, matchCase bool) (int64, error) {
	f.calls = append(f.calls, "replace "+find+"|"+replace)
	f.matchCase = matchCase
	return 3, f.err
}

func (f *fakeDocs) FormatText(_ context.Context, id string, start, end int64, format docs.TextFormat) error {
	f.calls = append(f.calls, "format "+id)
	f.format = format
	return f.err
}

func (f *fakeDocs) SetHeading(_ context.Context, id string, start, end int64, namedStyle string) error {
	f.calls = append(f.calls, "heading "+namedStyle)
	return f.err
}

func dispatch(t *testing.T, api API, name string, args map[string]any) (string, bool) {
	t.Helper()
	r := tools.NewRegistry(nil)
	require.NoError(t, r.Register(Tools(api)...))
	result := r.Dispatch(context.Background(), name, args)
	require.Len(t, result.Content, 1)
	return common.ResultText(result), result.IsError
}

func TestTools_Catalogue(t *testing.T) {
	var names []string
	for _, tool := range Tools(&fakeDocs{}) {
		names = append(names, tool.Name())
		assert.Equal(t, tool.Name() == "docs_get_document", tool.ReadOnly, tool.Name())
	}
	assert.Equal(t, []string{
		"docs_create_document",
		"docs_get_document",
		"docs_insert_text",
		"docs_append_text",
		"docs_replace_text",
		"docs_format_text",
		"docs_set_heading",
	}, names)
}

func TestGetDocument_Formats(t *testing.T) {
	fake := &fakeDocs{}

	text, isError := dispatch(t, fake, "docs_get_document", map[string]any{"documentId": "doc1"})
	require.False(t, isError, text)
	assert.Contains(t, text, `"format": "text"`)
	assert.Contains(t, text, `"content": "Notes\n\nHello world\n"`)

	text, isError = dispatch(t, fake, "docs_get_document", map[string]any{"documentId": "doc1", "format": "markdown"})
	require.False(t, isError, text)
	assert.Contains(t, text, `"content": "# Notes\n\nHello world\n"`)

	text, isError = dispatch(t, fake, "docs_get_document", map[string]any{"documentId": "doc1", "format": "json"})
	require.False(t, isError, text)
	assert.Contains(t, text, `"documentId": "doc1"`)
	assert.Contains(t, text, `"textRun"`)

	text, isError = dispatch(t, fake, "docs_get_document", map[string]any{"documentId": "doc1", "format": "html"})
	assert.True(t, isError)
	assert.Equal(t, "Invalid format: expected one of: text, markdown, json", text)
}

func TestGetDocument_Idempotent(t *testing.T) {
	fake := &fakeDocs{}
	first, _ := dispatch(t, fake, "docs_get_document", map[string]any{"documentId": "doc1", "format": "markdown"})
	second, _ := dispatch(t, fake, "docs_get_document", map[string]any{"documentId": "doc1", "format": "markdown"})
	assert.Equal(t, first, second)
}

func TestReplaceText_MatchCaseDefault(t *testing.T) {
	fake := &fakeDocs{}
	text, isError := dispatch(t, fake, "docs_replace_text", map[string]any{
		"documentId": "doc1",
		"find":       "draft",
		"replace":    "",
	})
	require.False(t, isError, text)
	assert.True(t, fake.matchCase)
	assert.Contains(t, text, `"occurrencesChanged": 3`)
	assert.Equal(t, []string{"replace draft|"}, fake.calls)
}

func TestFormatText(t *testing.T) {
	fake := &fakeDocs{}
	text, isError := dispatch(t, fake, "docs_format_text", map[string]any{
		"documentId":      "doc1",
		"startIndex":      1,
		"endIndex":        6,
		"bold":            true,
		"fontSize":        14,
		"foregroundColor": "#336699",
	})
	require.False(t, isError, text)
	require.NotNil(t, fake.format.Bold)
	require.NotNil(t, fake.format.FontSize)
	assert.Equal(t, 14.0, *fake.format.FontSize)
	assert.Nil(t, fake.format.Italic)
	assert.Equal(t, "#336699", fake.format.ForegroundColor)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		tool string
		args map[string]any
		want string
	}{
		{"missing title", "docs_create_document", nil, "Invalid title: expected non-empty string"},
		{"index not integer", "docs_insert_text", map[string]any{"documentId": "d", "text": "x", "index": 1.5}, "Invalid index: expected integer"},
		{"index zero", "docs_insert_text", map[string]any{"documentId": "d", "text": "x", "index": 0}, "Invalid index: expected integer of at least 1"},
		{"empty append", "docs_append_text", map[string]any{"documentId": "d", "text": ""}, "Invalid text: expected non-empty string"},
		{"missing replace", "docs_replace_text", map[string]any{"documentId": "d", "find": "a"}, "Invalid replace: expected string"},
		{"reversed range", "docs_format_text", map[string]any{"documentId": "d", "startIndex": 5, "endIndex": 5, "bold": true}, "Invalid endIndex: expected integer greater than startIndex"},
		{"no style", "docs_format_text", map[string]any{"documentId": "d", "startIndex": 1, "endIndex": 5}, "Invalid style: expected at least one of bold, italic, underline, fontSize, foregroundColor"},
		{"bad color", "docs_format_text", map[string]any{"documentId": "d", "startIndex": 1, "endIndex": 5, "foregroundColor": "blue"}, "Invalid foregroundColor: expected hex color #RRGGBB"},
		{"bad heading", "docs_set_heading", map[string]any{"documentId": "d", "startIndex": 1, "endIndex": 5, "heading": "H1"}, "Invalid heading: expected one of: NORMAL_TEXT, TITLE, SUBTITLE, HEADING_1, HEADING_2, HEADING_3, HEADING_4, HEADING_5, HEADING_6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeDocs{}
			text, isError := dispatch(t, fake, tt.tool, tt.args)
			assert.True(t, isError)
			assert.Equal(t, tt.want, text)
			assert.Empty(t, fake.calls)
		})
	}
}

func TestEdits(t *testing.T) {
	fake := &fakeDocs{}

	_, isError := dispatch(t, fake, "docs_create_document", map[string]any{"title": "Plan", "content": "Intro"})
	require.False(t, isError)
	_, isError = dispatch(t, fake, "docs_insert_text", map[string]any{"documentId": "doc1", "text": "Hi ", "index": 1})
	require.False(t, isError)
	_, isError = dispatch(t, fake, "docs_append_text", map[string]any{"documentId": "doc1", "text": "Bye"})
	require.False(t, isError)
	text, isError := dispatch(t, fake, "docs_set_heading", map[string]any{"documentId": "doc1", "startIndex": 1, "endIndex": 4, "heading": "HEADING_2"})
	require.False(t, isError)
	assert.Contains(t, text, `"updated": true`)

	assert.Equal(t, []string{"create Plan|Intro", "insert doc1|Hi ", "append doc1|Bye", "heading HEADING_2"}, fake.calls)
}

func TestRemoteError(t *testing.T) {
	fake := &fakeDocs{err: errors.New("failed to update document doc1: 404")}
	text, isError := dispatch(t, fake, "docs_append_text", map[string]any{"documentId": "doc1", "text": "x"})
	assert.True(t, isError)
	assert.Equal(t, "Error appending text: failed to update document doc1: 404", text)
}
