package drive_tools

import (
	"context"

	"github.com/teemow/gworkspace-mcp/internal/drive"
	"github.com/teemow/gworkspace-mcp/internal/instrumentation"
	"github.com/teemow/gworkspace-mcp/internal/tools"
)

// API is the part of *drive.Client the tools use.
type API interface {
	Search(ctx context.Context, query string, pageSize int, pageToken string) (*drive.FileList, error)
	GetFile(ctx context.Context, fileID string) (*drive.FileInfo, error)
	MoveFile(ctx context.Context, fileID, folderID string) (*drive.FileInfo, error)
	CreateFolder(ctx context.Context, name, parentID string) (*drive.FileInfo, error)
	CopyFile(ctx context.Context, fileID, name, parentID string) (*drive.FileInfo, error)
	ListChildren(ctx context.Context, folderID string, withMetadata bool) ([]*drive.FileInfo, error)
	SearchContent(ctx context.Context, text, mimeType string, pageSize int) ([]*drive.FileInfo, error)
	ListRevisions(ctx context.Context, fileID string, pageSize int) ([]*drive.Revision, error)
	Export(ctx context.Context, fileID, mimeType string) ([]byte, error)
	ListPermissions(ctx context.Context, fileID string) ([]*drive.Permission, error)
}

// FileWriter stores exported files locally.
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
}

// BatchRecorder counts per-item outcomes of batch and recursive tools.
type BatchRecorder interface {
	RecordBatchItems(ctx context.Context, toolName string, succeeded, failed int)
}

// Deps are the collaborators of the Drive tools.
type Deps struct {
	Drive API
	Files FileWriter
	Batch BatchRecorder
}

type handlers struct {
	api   API
	files FileWriter
	batch BatchRecorder
}

type nopRecorder struct{}

func (nopRecorder) RecordBatchItems(context.Context, string, int, int) {}

// Tools returns the Drive catalogue in its documented order.
func Tools(deps Deps) []tools.Tool {
	h := &handlers{api: deps.Drive, files: deps.Files, batch: deps.Batch}
	if h.batch == nil {
		h.batch = nopRecorder{}
	}

	return []tools.Tool{
		{
			Definition: searchTool(),
			ReadOnly:   true,
			Service:    instrumentation.ServiceDrive,
			Operation:  instrumentation.OperationSearch,
			Action:     "searching files",
			Handler:    tools.Bind(parseSearch, h.search),
		},
		{
			Definition: getFileInfoTool(),
			ReadOnly:   true,
			Service:    instrumentation.ServiceDrive,
			Operation:  instrumentation.OperationGet,
			Action:     "getting file info",
			Handler:    tools.Bind(parseFileID, h.getFileInfo),
		},
		{
			Definition: moveFileTool(),
			Service:    instrumentation.ServiceDrive,
			Operation:  instrumentation.OperationMove,
			Action:     "moving file",
			Handler:    tools.Bind(parseMove, h.moveFile),
		},
		{
			Definition: batchMoveFilesTool(),
			Service:    instrumentation.ServiceDrive,
			Operation:  instrumentation.OperationMove,
			Action:     "moving files",
			Handler:    tools.Bind(parseBatchMove, h.batchMoveFiles),
		},
		{
			Definition: createFolderTool(),
			Service:    instrumentation.ServiceDrive,
			Operation:  instrumentation.OperationCreate,
			Action:     "creating folder",
			Handler:    tools.Bind(parseCreateFolder, h.createFolder),
		},
		{
			Definition: copyFolderTool(),
			Service:    instrumentation.ServiceDrive,
			Operation:  instrumentation.OperationCopy,
			Action:     "copying folder",
			Handler:    tools.Bind(parseCopyFolder, h.copyFolder),
		},
		{
			Definition: searchContentTool(),
			ReadOnly:   true,
			Service:    instrumentation.ServiceDrive,
			Operation:  instrumentation.OperationSearch,
			Action:     "searching file content",
			Handler:    tools.Bind(parseSearchContent, h.searchContent),
		},
		{
			Definition: listRevisionsTool(),
			ReadOnly:   true,
			Service:    instrumentation.ServiceDrive,
			Operation:  instrumentation.OperationList,
			Action:     "listing revisions",
			Handler:    tools.Bind(parseListRevisions, h.listRevisions),
		},
		{
			Definition: exportFileTool(),
			ReadOnly:   true,
			Service:    instrumentation.ServiceDrive,
			Operation:  instrumentation.OperationExport,
			Action:     "exporting file",
			Handler:    tools.Bind(parseExport, h.exportFile),
		},
		{
			Definition: batchExportFilesTool(),
			ReadOnly:   true,
			Service:    instrumentation.ServiceDrive,
			Operation:  instrumentation.OperationExport,
			Action:     "exporting files",
			Handler:    tools.Bind(parseBatchExport, h.batchExportFiles),
		},
		{
			Definition: listTreeTool(),
			ReadOnly:   true,
			Service:    instrumentation.ServiceDrive,
			Operation:  instrumentation.OperationList,
			Action:     "listing folder tree",
			Handler:    tools.Bind(parseListTree, h.listTree),
		},
		{
			Definition: listPermissionsTool(),
			ReadOnly:   true,
			Service:    instrumentation.ServiceDrive,
			Operation:  instrumentation.OperationList,
			Action:     "listing permissions",
			Handler:    tools.Bind(parseFileID, h.listPermissions),
		},
	}
}
