package docs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	docs "google.golang.org/api/docs/v1"
	"google.golang.org/api/option"
)

// fakeDocs records batchUpdate requests and answers with canned replies.
type fakeDocs struct {
	t       *testing.T
	updates []*docs.BatchUpdateDocumentRequest
	replies []*docs.Response
}

func (f *fakeDocs) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/v1/documents":
		var doc docs.Document
		assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&doc))
		_ = json.NewEncoder(w).Encode(map[string]any{"documentId": "doc1", "title": doc.Title})
	case r.Method == http.MethodPost && r.URL.Path == "/v1/documents/doc1:batchUpdate":
		var req docs.BatchUpdateDocumentRequest
		assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
		f.updates = append(f.updates, &req)
		_ = json.NewEncoder(w).Encode(map[string]any{"documentId": "doc1", "replies": f.replies})
	case r.Method == http.MethodGet && r.URL.Path == "/v1/documents/doc1":
		assert.Equal(f.t, "true", r.URL.Query().Get("includeTabsContent"))
		_ = json.NewEncoder(w).Encode(map[string]any{"documentId": "doc1", "title": "Doc"})
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"Requested entity was not found."}}`))
	}
}

func newFakeClient(t *testing.T) (*Client, *fakeDocs) {
	t.Helper()
	fake := &fakeDocs{t: t}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), srv.Client(), option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	return client, fake
}

func boolPtr(b bool) *bool { return &b }

func TestClient_CreateDocument(t *testing.T) {
	client, fake := newFakeClient(t)

	ref, err := client.CreateDocument(context.Background(), "Notes", "Hello")
	require.NoError(t, err)
	assert.Equal(t, &DocumentRef{DocumentID: "doc1", Title: "Notes", URL: "https://docs.google.com/document/d/doc1/edit"}, ref)

	require.Len(t, fake.updates, 1)
	insert := fake.updates[0].Requests[0].InsertText
	require.NotNil(t, insert)
	assert.Equal(t, "Hello", insert.Text)
	assert.Equal(t, int64(1), insert.Location.Index)
}

func TestClient_CreateDocument_NoContent(t *testing.T) {
	client, fake := newFakeClient(t)

	_, err := client.CreateDocument(context.Background(), "Empty", "")
	require.NoError(t, err)
	assert.Empty(t, fake.updates)
}

func TestClient_GetDocument(t *testing.T) {
	client, _ := newFakeClient(t)

	doc, err := client.GetDocument(context.Background(), "doc1")
	require.NoError(t, err)
	assert.Equal(t, "Doc", doc.Title)

	_, err = client.GetDocument(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get document missing")
}

func TestClient_AppendText(t *testing.T) {
	client, fake := newFakeClient(t)

	require.NoError(t, client.AppendText(context.Background(), "doc1", "tail"))

	insert := fake.updates[0].Requests[0].InsertText
	assert.Equal(t, "tail", insert.Text)
	assert.NotNil(t, insert.EndOfSegmentLocation)
	assert.Nil(t, insert.Location)
}

func TestClient_ReplaceAllText(t *testing.T) {
	client, fake := newFakeClient(t)
	fake.replies = []*docs.Response{{ReplaceAllText: &docs.ReplaceAllTextResponse{OccurrencesChanged: 3}}}

	n, err := client.ReplaceAllText(context.Background(), "doc1", "foo", "", false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	req := fake.updates[0].Requests[0].ReplaceAllText
	assert.Equal(t, "foo", req.ContainsText.Text)
	assert.False(t, req.ContainsText.MatchCase)
}

func TestClient_FormatText(t *testing.T) {
	client, fake := newFakeClient(t)
	size := 14.0

	err := client.FormatText(context.Background(), "doc1", 5, 10, TextFormat{Bold: boolPtr(false), FontSize: &size, ForegroundColor: "#FF0000"})
	require.NoError(t, err)

	req := fake.updates[0].Requests[0].UpdateTextStyle
	assert.Equal(t, "bold,fontSize,foregroundColor", req.Fields)
	assert.Equal(t, int64(5), req.Range.StartIndex)
	assert.Equal(t, int64(10), req.Range.EndIndex)
	assert.Equal(t, 14.0, req.TextStyle.FontSize.Magnitude)
	assert.Equal(t, 1.0, req.TextStyle.ForegroundColor.Color.RgbColor.Red)
}

func TestClient_SetHeading(t *testing.T) {
	client, fake := newFakeClient(t)

	require.NoError(t, client.SetHeading(context.Background(), "doc1", 1, 8, "HEADING_2"))

	req := fake.updates[0].Requests[0].UpdateParagraphStyle
	assert.Equal(t, "namedStyleType", req.Fields)
	assert.Equal(t, "HEADING_2", req.ParagraphStyle.NamedStyleType)
}

func TestTextStyle(t *testing.T) {
	_, _, err := textStyle(TextFormat{})
	require.Error(t, err)

	_, _, err = textStyle(TextFormat{ForegroundColor: "red"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "#RRGGBB")

	style, fields, err := textStyle(TextFormat{Italic: boolPtr(true), Underline: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "italic,underline", fields)
	assert.True(t, style.Italic)
	assert.Equal(t, []string{"Italic", "Underline"}, style.ForceSendFields)

	data, err := json.Marshal(style)
	require.NoError(t, err)
	assert.JSONEq(t, `{"italic":true,"underline":false}`, string(data))
}

func TestTextFormat_IsEmpty(t *testing.T) {
	assert.True(t, TextFormat{}.IsEmpty())
	assert.False(t, TextFormat{Bold: boolPtr(false)}.IsEmpty())
	assert.False(t, TextFormat{ForegroundColor: "#000000"}.IsEmpty())
}
