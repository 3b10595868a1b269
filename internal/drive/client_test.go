package drive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), srv.Client(), option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error": map[string]any{"code": 404, "message": "File not found"},
	})
}

func TestClient_Search(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/files", r.URL.Path)
		assert.Equal(t, "name contains 'report'", r.URL.Query().Get("q"))
		assert.Equal(t, "10", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "tok-1", r.URL.Query().Get("pageToken"))

		writeJSON(w, http.StatusOK, map[string]any{
			"nextPageToken": "tok-2",
			"files": []map[string]any{
				{"id": "f1", "name": "report.pdf", "mimeType": "application/pdf", "size": "42"},
			},
		})
	})

	list, err := client.Search(context.Background(), "name contains 'report'", 10, "tok-1")
	require.NoError(t, err)
	require.Len(t, list.Files, 1)
	assert.Equal(t, "f1", list.Files[0].ID)
	assert.Equal(t, int64(42), list.Files[0].Size)
	assert.Equal(t, "tok-2", list.NextPageToken)
}

func TestClient_MoveFile(t *testing.T) {
	var patched bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/f1", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "parents", r.URL.Query().Get("fields"))
			writeJSON(w, http.StatusOK, map[string]any{"parents": []string{"p1", "p2"}})
		case http.MethodPatch:
			patched = true
			assert.Equal(t, "dst", r.URL.Query().Get("addParents"))
			assert.Equal(t, "p1,p2", r.URL.Query().Get("removeParents"))
			writeJSON(w, http.StatusOK, map[string]any{"id": "f1", "name": "a.txt", "parents": []string{"dst"}})
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})

	info, err := client.MoveFile(context.Background(), "f1", "dst")
	require.NoError(t, err)
	assert.True(t, patched)
	assert.Equal(t, []string{"dst"}, info.Parents)
}

func TestClient_MoveFile_ParentLookupFails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("update must not be attempted, got %s", r.Method)
		}
		notFound(w)
	})

	_, err := client.MoveFile(context.Background(), "missing", "dst")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get parents of missing")
	assert.Contains(t, err.Error(), "File not found")
}

func TestClient_ListChildren(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `'it\'s' in parents and trashed = false`, r.URL.Query().Get("q"))
		assert.Equal(t, "1000", r.URL.Query().Get("pageSize"))
		assert.Equal(t, childFields, r.URL.Query().Get("fields"))
		writeJSON(w, http.StatusOK, map[string]any{
			"files": []map[string]any{
				{"id": "c1", "name": "sub", "mimeType": FolderMimeType},
				{"id": "c2", "name": "doc.txt", "mimeType": "text/plain"},
			},
		})
	})

	children, err := client.ListChildren(context.Background(), "it's", false)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.True(t, children[0].IsFolder())
	assert.False(t, children[1].IsFolder())
}

func TestClient_Export(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/doc1/export", r.URL.Path)
		assert.Equal(t, "application/pdf", r.URL.Query().Get("mimeType"))
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7"))
	})

	data, err := client.Export(context.Background(), "doc1", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7"), data)
}

func TestClient_ListPermissions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/f1/permissions", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"permissions": []map[string]any{
				{"id": "p1", "type": "user", "role": "writer", "emailAddress": "a@example.com"},
			},
		})
	})

	perms, err := client.ListPermissions(context.Background(), "f1")
	require.NoError(t, err)
	require.Len(t, perms, 1)
	assert.Equal(t, Permission{ID: "p1", Type: "user", Role: "writer", EmailAddress: "a@example.com"}, *perms[0])
}

func TestContentQuery(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		mimeType string
		want     string
	}{
		{"plain", "budget", "", "fullText contains 'budget' and trashed = false"},
		{"with mime type", "budget", "application/pdf", "fullText contains 'budget' and trashed = false and mimeType = 'application/pdf'"},
		{"quotes escaped", `O'Neil \ co`, "", `fullText contains 'O\'Neil \\ co' and trashed = false`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentQuery(tt.text, tt.mimeType))
		})
	}
}

func TestExportMimeType(t *testing.T) {
	assert.Equal(t, []string{"pdf", "docx", "xlsx", "pptx"}, ExportFormats())

	for _, format := range ExportFormats() {
		mime, ok := ExportMimeType(format)
		assert.True(t, ok, format)
		assert.NotEmpty(t, mime, format)
	}

	_, ok := ExportMimeType("odt")
	assert.False(t, ok)
	_, ok = ExportMimeType("PDF")
	assert.False(t, ok)
}

func TestConvertFile(t *testing.T) {
	info := convertFile(&drive.File{
		Id:           "f1",
		Name:         "notes",
		MimeType:     "application/vnd.google-apps.document",
		CreatedTime:  "2024-01-01T10:00:00Z",
		ModifiedTime: "not a time",
		Owners:       []*drive.User{{DisplayName: "Ada", EmailAddress: "ada@example.com"}},
		Shared:       true,
	})

	assert.Equal(t, "f1", info.ID)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), info.CreatedTime)
	assert.True(t, info.ModifiedTime.IsZero())
	assert.Equal(t, []User{{DisplayName: "Ada", EmailAddress: "ada@example.com"}}, info.Owners)
	assert.True(t, info.Shared)
}
