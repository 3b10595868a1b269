package drive_tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/gworkspace-mcp/internal/drive"
	"github.com/teemow/gworkspace-mcp/internal/tools/args"
)

const (
	nodeTypeFile   = "file"
	nodeTypeFolder = "folder"
)

func listTreeTool() mcp.Tool {
	return mcp.NewTool("drive_list_tree",
		mcp.WithDescription("List every file below a folder as a flat list with paths relative to that folder. At most 1000 entries are read per folder."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("folderId",
			mcp.Required(),
			mcp.Description("ID of the folder to list"),
		),
		mcp.WithBoolean("recursive",
			mcp.Description("Descend into subfolders (default: true)"),
			mcp.DefaultBool(true),
		),
		mcp.WithBoolean("includeMetadata",
			mcp.Description("Include size, timestamps, owner and link (default: false)"),
			mcp.DefaultBool(false),
		),
	)
}

type listTreeRequest struct {
	FolderID        string
	Recursive       bool
	IncludeMetadata bool
}

func parseListTree(a args.Args) (listTreeRequest, error) {
	var req listTreeRequest
	var err error
	if req.FolderID, err = a.String("folderId"); err != nil {
		return req, err
	}
	if req.Recursive, err = a.OptionalBool("recursive", true); err != nil {
		return req, err
	}
	if req.IncludeMetadata, err = a.OptionalBool("includeMetadata", false); err != nil {
		return req, err
	}
	return req, nil
}

// FileNode is one entry of a tree listing.
type FileNode struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	Type         string    `json:"type"`
	MimeType     string    `json:"mimeType"`
	Size         int64     `json:"size,omitempty"`
	CreatedTime  time.Time `json:"createdTime,omitzero"`
	ModifiedTime time.Time `json:"modifiedTime,omitzero"`
	Owner        string    `json:"owner,omitempty"`
	WebViewLink  string    `json:"webViewLink,omitempty"`
}

type listTreeResult struct {
	FolderID   string     `json:"folderId"`
	TotalCount int        `json:"totalCount"`
	Files      []FileNode `json:"files"`
}

func (h *handlers) listTree(ctx context.Context, req listTreeRequest) (any, error) {
	files := make([]FileNode, 0)
	if err := h.walk(ctx, req, req.FolderID, "", &files); err != nil {
		return nil, err
	}
	return listTreeResult{FolderID: req.FolderID, TotalCount: len(files), Files: files}, nil
}

// walk appends the children of folderID to out, each directly followed by
// its own descendants. Any listing error aborts the whole walk.
func (h *handlers) walk(ctx context.Context, req listTreeRequest, folderID, prefix string, out *[]FileNode) error {
	children, err := h.api.ListChildren(ctx, folderID, req.IncludeMetadata)
	if err != nil {
		return err
	}

	for _, child := range children {
		path := child.Name
		if prefix != "" {
			path = prefix + "/" + child.Name
		}
		*out = append(*out, newFileNode(child, path, req.IncludeMetadata))

		if child.IsFolder() && req.Recursive {
			if err := h.walk(ctx, req, child.ID, path, out); err != nil {
				return err
			}
		}
	}
	return nil
}

func newFileNode(f *drive.FileInfo, path string, withMetadata bool) FileNode {
	n := FileNode{
		ID:       f.ID,
		Name:     f.Name,
		Path:     path,
		Type:     nodeTypeFile,
		MimeType: f.MimeType,
	}
	if f.IsFolder() {
		n.Type = nodeTypeFolder
	}
	if !withMetadata {
		return n
	}

	n.Size = f.Size
	n.CreatedTime = f.CreatedTime
	n.ModifiedTime = f.ModifiedTime
	n.WebViewLink = f.WebViewLink
	if len(f.Owners) > 0 {
		n.Owner = f.Owners[0].EmailAddress
		if n.Owner == "" {
			n.Owner = f.Owners[0].DisplayName
		}
	}
	return n
}
