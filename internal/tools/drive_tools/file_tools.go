package drive_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/gworkspace-mcp/internal/drive"
	"github.com/teemow/gworkspace-mcp/internal/tools/args"
)

const (
	defaultSearchPageSize    = 10
	defaultContentPageSize   = 100
	defaultRevisionsPageSize = 20
)

func searchTool() mcp.Tool {
	return mcp.NewTool("drive_search",
		mcp.WithDescription("Search Google Drive with a Drive query, e.g. \"name contains 'report' and mimeType = 'application/pdf'\""),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Drive search query"),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Maximum number of results (default: 10)"),
			mcp.DefaultNumber(defaultSearchPageSize),
		),
		mcp.WithString("pageToken",
			mcp.Description("Token of the page to return, taken from nextPageToken of a previous call"),
		),
	)
}

func getFileInfoTool() mcp.Tool {
	return mcp.NewTool("drive_get_file_info",
		mcp.WithDescription("Get the metadata of a file or folder"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("ID of the file"),
		),
	)
}

func createFolderTool() mcp.Tool {
	return mcp.NewTool("drive_create_folder",
		mcp.WithDescription("Create a folder"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the new folder"),
		),
		mcp.WithString("parentId",
			mcp.Description("ID of the parent folder (default: My Drive root)"),
		),
	)
}

func searchContentTool() mcp.Tool {
	return mcp.NewTool("drive_search_content",
		mcp.WithDescription("Full-text search inside file contents"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Text to look for"),
		),
		mcp.WithString("mimeType",
			mcp.Description("Only return files of this MIME type"),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Maximum number of results (default: 100)"),
			mcp.DefaultNumber(defaultContentPageSize),
		),
	)
}

func listRevisionsTool() mcp.Tool {
	return mcp.NewTool("drive_list_revisions",
		mcp.WithDescription("List the revision history of a file"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("ID of the file"),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Maximum number of revisions (default: 20)"),
			mcp.DefaultNumber(defaultRevisionsPageSize),
		),
	)
}

func listPermissionsTool() mcp.Tool {
	return mcp.NewTool("drive_list_permissions",
		mcp.WithDescription("List who has access to a file and with which role"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("ID of the file"),
		),
	)
}

type searchRequest struct {
	Query     string
	PageSize  int64
	PageToken string
}

func parseSearch(a args.Args) (searchRequest, error) {
	var req searchRequest
	var err error
	if req.Query, err = a.String("query"); err != nil {
		return req, err
	}
	if req.PageSize, err = a.OptionalPositiveInt("pageSize", defaultSearchPageSize); err != nil {
		return req, err
	}
	if req.PageToken, err = a.OptionalString("pageToken", ""); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handlers) search(ctx context.Context, req searchRequest) (any, error) {
	return h.api.Search(ctx, req.Query, int(req.PageSize), req.PageToken)
}

type fileIDRequest struct {
	FileID string
}

func parseFileID(a args.Args) (fileIDRequest, error) {
	id, err := a.String("fileId")
	return fileIDRequest{FileID: id}, err
}

func (h *handlers) getFileInfo(ctx context.Context, req fileIDRequest) (any, error) {
	return h.api.GetFile(ctx, req.FileID)
}

type createFolderRequest struct {
	Name     string
	ParentID string
}

func parseCreateFolder(a args.Args) (createFolderRequest, error) {
	var req createFolderRequest
	var err error
	if req.Name, err = a.String("name"); err != nil {
		return req, err
	}
	if req.ParentID, err = a.OptionalString("parentId", ""); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handlers) createFolder(ctx context.Context, req createFolderRequest) (any, error) {
	return h.api.CreateFolder(ctx, req.Name, req.ParentID)
}

type searchContentRequest struct {
	Query    string
	MimeType string
	PageSize int64
}

func parseSearchContent(a args.Args) (searchContentRequest, error) {
	var req searchContentRequest
	var err error
	if req.Query, err = a.String("query"); err != nil {
		return req, err
	}
	if req.MimeType, err = a.OptionalString("mimeType", ""); err != nil {
		return req, err
	}
	if req.PageSize, err = a.OptionalPositiveInt("pageSize", defaultContentPageSize); err != nil {
		return req, err
	}
	return req, nil
}

type searchContentResult struct {
	Query string            `json:"query"`
	Count int               `json:"count"`
	Files []*drive.FileInfo `json:"files"`
}

func (h *handlers) searchContent(ctx context.Context, req searchContentRequest) (any, error) {
	files, err := h.api.SearchContent(ctx, req.Query, req.MimeType, int(req.PageSize))
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []*drive.FileInfo{}
	}
	return searchContentResult{Query: req.Query, Count: len(files), Files: files}, nil
}

type listRevisionsRequest struct {
	FileID   string
	PageSize int64
}

func parseListRevisions(a args.Args) (listRevisionsRequest, error) {
	var req listRevisionsRequest
	var err error
	if req.FileID, err = a.String("fileId"); err != nil {
		return req, err
	}
	if req.PageSize, err = a.OptionalPositiveInt("pageSize", defaultRevisionsPageSize); err != nil {
		return req, err
	}
	return req, nil
}

type revisionsResult struct {
	FileID    string            `json:"fileId"`
	Revisions []*drive.Revision `json:"revisions"`
}

func (h *handlers) listRevisions(ctx context.Context, req listRevisionsRequest) (any, error) {
	revs, err := h.api.ListRevisions(ctx, req.FileID, int(req.PageSize))
	if err != nil {
		return nil, err
	}
	if revs == nil {
		revs = []*drive.Revision{}
	}
	return revisionsResult{FileID: req.FileID, Revisions: revs}, nil
}

type permissionsResult struct {
	FileID      string              `json:"fileId"`
	Permissions []*drive.Permission `json:"permissions"`
}

func (h *handlers) listPermissions(ctx context.Context, req fileIDRequest) (any, error) {
	perms, err := h.api.ListPermissions(ctx, req.FileID)
	if err != nil {
		return nil, err
	}
	if perms == nil {
		perms = []*drive.Permission{}
	}
	return permissionsResult{FileID: req.FileID, Permissions: perms}, nil
}
