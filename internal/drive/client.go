package drive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	// FolderMimeType is the MIME type Drive uses for folders.
	FolderMimeType = "application/vnd.google-apps.folder"

	// ChildPageSize is the number of children fetched per folder. Listings
	// read a single page.
	ChildPageSize = 1000
)

const (
	fileFields     = "id, name, mimeType, size, createdTime, modifiedTime, webViewLink, parents, owners(displayName, emailAddress), shared, trashed"
	childFields    = "files(id, name, mimeType)"
	revisionFields = "revisions(id, mimeType, modifiedTime, size, keepForever, lastModifyingUser(displayName, emailAddress))"
)

// Client wraps the Google Drive API service.
type Client struct {
	service *drive.Service
}

// NewClient creates a Drive client that sends requests through httpClient.
// Extra options are appended after the HTTP client, e.g. an endpoint override.
func NewClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}
	return &Client{service: svc}, nil
}

// Search runs a Drive query and returns one page of results.
func (c *Client) Search(ctx context.Context, query string, pageSize int, pageToken string) (*FileList, error) {
	call := c.service.Files.List().
		Context(ctx).
		Q(query).
		Fields("nextPageToken, files(" + fileFields + ")")
	if pageSize > 0 {
		call = call.PageSize(int64(pageSize))
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search files: %w", err)
	}
	return &FileList{
		Files:         convertFiles(resp.Files),
		NextPageToken: resp.NextPageToken,
	}, nil
}

// GetFile retrieves metadata for a file or folder.
func (c *Client) GetFile(ctx context.Context, fileID string) (*FileInfo, error) {
	f, err := c.service.Files.Get(fileID).
		Context(ctx).
		Fields(fileFields).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s: %w", fileID, err)
	}
	return convertFile(f), nil
}

// MoveFile reparents a file into folderID, removing every previous parent.
// Drive has no atomic move, so the current parents are read first.
func (c *Client) MoveFile(ctx context.Context, fileID, folderID string) (*FileInfo, error) {
	current, err := c.service.Files.Get(fileID).
		Context(ctx).
		Fields("parents").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get parents of %s: %w", fileID, err)
	}

	call := c.service.Files.Update(fileID, &drive.File{}).
		Context(ctx).
		AddParents(folderID).
		Fields(fileFields)
	if len(current.Parents) > 0 {
		call = call.RemoveParents(strings.Join(current.Parents, ","))
	}

	f, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to move file %s: %w", fileID, err)
	}
	return convertFile(f), nil
}

// CreateFolder creates a folder under parentID, or under My Drive when empty.
func (c *Client) CreateFolder(ctx context.Context, name, parentID string) (*FileInfo, error) {
	folder := &drive.File{
		Name:     name,
		MimeType: FolderMimeType,
	}
	if parentID != "" {
		folder.Parents = []string{parentID}
	}

	f, err := c.service.Files.Create(folder).
		Context(ctx).
		Fields(fileFields).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create folder %q: %w", name, err)
	}
	return convertFile(f), nil
}

// CopyFile copies a single file into parentID under the given name.
func (c *Client) CopyFile(ctx context.Context, fileID, name, parentID string) (*FileInfo, error) {
	dst := &drive.File{Name: name}
	if parentID != "" {
		dst.Parents = []string{parentID}
	}

	f, err := c.service.Files.Copy(fileID, dst).
		Context(ctx).
		Fields(fileFields).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to copy file %s: %w", fileID, err)
	}
	return convertFile(f), nil
}

// ListChildren returns the non-trashed immediate children of a folder.
// Only the first ChildPageSize entries are returned. Without withMetadata
// only id, name and mimeType are requested.
func (c *Client) ListChildren(ctx context.Context, folderID string, withMetadata bool) ([]*FileInfo, error) {
	fields := childFields
	if withMetadata {
		fields = "files(" + fileFields + ")"
	}

	resp, err := c.service.Files.List().
		Context(ctx).
		Q(fmt.Sprintf("'%s' in parents and trashed = false", escapeQueryValue(folderID))).
		PageSize(ChildPageSize).
		Fields(googleapi.Field(fields)).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list children of %s: %w", folderID, err)
	}
	return convertFiles(resp.Files), nil
}

// SearchContent finds files whose indexed text contains text, optionally
// restricted to one MIME type.
func (c *Client) SearchContent(ctx context.Context, text, mimeType string, pageSize int) ([]*FileInfo, error) {
	call := c.service.Files.List().
		Context(ctx).
		Q(ContentQuery(text, mimeType)).
		Fields("files(" + fileFields + ")")
	if pageSize > 0 {
		call = call.PageSize(int64(pageSize))
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search file content: %w", err)
	}
	return convertFiles(resp.Files), nil
}

// ContentQuery builds the Drive query used by SearchContent.
func ContentQuery(text, mimeType string) string {
	q := fmt.Sprintf("fullText contains '%s' and trashed = false", escapeQueryValue(text))
	if mimeType != "" {
		q += fmt.Sprintf(" and mimeType = '%s'", escapeQueryValue(mimeType))
	}
	return q
}

// ListRevisions returns up to pageSize revisions of a file.
func (c *Client) ListRevisions(ctx context.Context, fileID string, pageSize int) ([]*Revision, error) {
	call := c.service.Revisions.List(fileID).
		Context(ctx).
		Fields(googleapi.Field(revisionFields))
	if pageSize > 0 {
		call = call.PageSize(int64(pageSize))
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions of %s: %w", fileID, err)
	}

	revisions := make([]*Revision, 0, len(resp.Revisions))
	for _, r := range resp.Revisions {
		rev := &Revision{
			ID:           r.Id,
			MimeType:     r.MimeType,
			ModifiedTime: parseTime(r.ModifiedTime),
			Size:         r.Size,
			KeepForever:  r.KeepForever,
		}
		if r.LastModifyingUser != nil {
			rev.LastModifyingUser = &User{
				DisplayName:  r.LastModifyingUser.DisplayName,
				EmailAddress: r.LastModifyingUser.EmailAddress,
			}
		}
		revisions = append(revisions, rev)
	}
	return revisions, nil
}

// Export converts a Google Workspace file to mimeType and returns the bytes.
func (c *Client) Export(ctx context.Context, fileID, mimeType string) ([]byte, error) {
	resp, err := c.service.Files.Export(fileID, mimeType).
		Context(ctx).
		Download()
	if err != nil {
		return nil, fmt.Errorf("failed to export file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read export of %s: %w", fileID, err)
	}
	return data, nil
}

// ListPermissions lists the access grants on a file.
func (c *Client) ListPermissions(ctx context.Context, fileID string) ([]*Permission, error) {
	resp, err := c.service.Permissions.List(fileID).
		Context(ctx).
		Fields("permissions(id, type, role, emailAddress, domain, displayName)").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions of %s: %w", fileID, err)
	}

	permissions := make([]*Permission, len(resp.Permissions))
	for i, p := range resp.Permissions {
		permissions[i] = &Permission{
			ID:           p.Id,
			Type:         p.Type,
			Role:         p.Role,
			EmailAddress: p.EmailAddress,
			Domain:       p.Domain,
			DisplayName:  p.DisplayName,
		}
	}
	return permissions, nil
}

// escapeQueryValue escapes a value placed inside single quotes in a Drive query.
func escapeQueryValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

func convertFiles(files []*drive.File) []*FileInfo {
	out := make([]*FileInfo, len(files))
	for i, f := range files {
		out[i] = convertFile(f)
	}
	return out
}

func convertFile(f *drive.File) *FileInfo {
	info := &FileInfo{
		ID:           f.Id,
		Name:         f.Name,
		MimeType:     f.MimeType,
		Size:         f.Size,
		CreatedTime:  parseTime(f.CreatedTime),
		ModifiedTime: parseTime(f.ModifiedTime),
		WebViewLink:  f.WebViewLink,
		Parents:      f.Parents,
		Shared:       f.Shared,
		Trashed:      f.Trashed,
	}
	for _, owner := range f.Owners {
		info.Owners = append(info.Owners, User{
			DisplayName:  owner.DisplayName,
			EmailAddress: owner.EmailAddress,
		})
	}
	return info
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
