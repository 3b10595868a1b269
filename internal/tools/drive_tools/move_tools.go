package drive_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/gworkspace-mcp/internal/tools/args"
	"github.com/teemow/gworkspace-mcp/internal/tools/batch"
)

func moveFileTool() mcp.Tool {
	return mcp.NewTool("drive_move_file",
		mcp.WithDescription("Move a file to another folder. The file is removed from all of its current folders."),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("ID of the file to move"),
		),
		mcp.WithString("folderId",
			mcp.Required(),
			mcp.Description("ID of the destination folder"),
		),
	)
}

func batchMoveFilesTool() mcp.Tool {
	return mcp.NewTool("drive_batch_move_files",
		mcp.WithDescription("Move several files to one folder. Files are moved one after another and a failure does not stop the rest."),
		mcp.WithArray("fileIds",
			mcp.Required(),
			mcp.Description("IDs of the files to move"),
			mcp.WithStringItems(),
		),
		mcp.WithString("folderId",
			mcp.Required(),
			mcp.Description("ID of the destination folder"),
		),
	)
}

type moveRequest struct {
	FileID   string
	FolderID string
}

func parseMove(a args.Args) (moveRequest, error) {
	var req moveRequest
	var err error
	if req.FileID, err = a.String("fileId"); err != nil {
		return req, err
	}
	if req.FolderID, err = a.String("folderId"); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handlers) moveFile(ctx context.Context, req moveRequest) (any, error) {
	return h.api.MoveFile(ctx, req.FileID, req.FolderID)
}

type batchMoveRequest struct {
	FileIDs  []string
	FolderID string
}

func parseBatchMove(a args.Args) (batchMoveRequest, error) {
	var req batchMoveRequest
	var err error
	if req.FileIDs, err = a.StringSlice("fileIds"); err != nil {
		return req, err
	}
	if req.FolderID, err = a.String("folderId"); err != nil {
		return req, err
	}
	return req, nil
}

type batchMoveResult struct {
	MovedCount  int                  `json:"movedCount"`
	FailedCount int                  `json:"failedCount"`
	Details     batch.Result[string] `json:"details"`
}

func (h *handlers) batchMoveFiles(ctx context.Context, req batchMoveRequest) (any, error) {
	res := batch.Process(ctx, req.FileIDs, func(ctx context.Context, id string) (string, error) {
		if _, err := h.api.MoveFile(ctx, id, req.FolderID); err != nil {
			return "", err
		}
		return id, nil
	})
	h.batch.RecordBatchItems(ctx, "drive_batch_move_files", len(res.Success), len(res.Failed))

	return batchMoveResult{
		MovedCount:  len(res.Success),
		FailedCount: len(res.Failed),
		Details:     res,
	}, nil
}
