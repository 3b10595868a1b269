package drive_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/gworkspace-mcp/internal/drive"
	"github.com/teemow/gworkspace-mcp/internal/tools/args"
)

const copyNamePrefix = "Copy of "

func copyFolderTool() mcp.Tool {
	return mcp.NewTool("drive_copy_folder",
		mcp.WithDescription("Copy a folder and everything below it. Files keep their names; the copied folders are named \"Copy of <name>\"."),
		mcp.WithString("folderId",
			mcp.Required(),
			mcp.Description("ID of the folder to copy"),
		),
		mcp.WithString("destinationParentId",
			mcp.Description("ID of the folder that receives the copy (default: My Drive root)"),
		),
		mcp.WithString("newName",
			mcp.Description("Name of the copy (default: \"Copy of <name>\")"),
		),
	)
}

type copyFolderRequest struct {
	FolderID            string
	DestinationParentID string
	NewName             string
}

func parseCopyFolder(a args.Args) (copyFolderRequest, error) {
	var req copyFolderRequest
	var err error
	if req.FolderID, err = a.String("folderId"); err != nil {
		return req, err
	}
	if req.DestinationParentID, err = a.OptionalString("destinationParentId", ""); err != nil {
		return req, err
	}
	if req.NewName, err = a.OptionalString("newName", ""); err != nil {
		return req, err
	}
	return req, nil
}

// CopyError names a child that could not be copied.
type CopyError struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

type copyFolderResult struct {
	FolderID      string      `json:"folderId"`
	Name          string      `json:"name"`
	CopiedFiles   int         `json:"copiedFiles"`
	CopiedFolders int         `json:"copiedFolders"`
	Errors        []CopyError `json:"errors,omitempty"`
}

func (h *handlers) copyFolder(ctx context.Context, req copyFolderRequest) (any, error) {
	src, err := h.api.GetFile(ctx, req.FolderID)
	if err != nil {
		return nil, err
	}
	if !src.IsFolder() {
		return nil, fmt.Errorf("%s is not a folder", req.FolderID)
	}

	name := req.NewName
	if name == "" {
		name = copyNamePrefix + src.Name
	}

	root, err := h.api.CreateFolder(ctx, name, req.DestinationParentID)
	if err != nil {
		return nil, err
	}
	children, err := h.api.ListChildren(ctx, src.ID, false)
	if err != nil {
		return nil, err
	}

	res := &copyFolderResult{FolderID: root.ID, Name: root.Name}
	h.copyChildren(ctx, children, root.ID, res)
	h.batch.RecordBatchItems(ctx, "drive_copy_folder", res.CopiedFiles+res.CopiedFolders, len(res.Errors))
	return res, nil
}

// copyChildren copies children into the folder destID depth-first. Failures
// are collected in res and do not stop the siblings.
func (h *handlers) copyChildren(ctx context.Context, children []*drive.FileInfo, destID string, res *copyFolderResult) {
	for _, child := range children {
		if err := ctx.Err(); err != nil {
			res.Errors = append(res.Errors, CopyError{ID: child.ID, Name: child.Name, Error: err.Error()})
			continue
		}

		if !child.IsFolder() {
			if _, err := h.api.CopyFile(ctx, child.ID, child.Name, destID); err != nil {
				res.Errors = append(res.Errors, CopyError{ID: child.ID, Name: child.Name, Error: err.Error()})
				continue
			}
			res.CopiedFiles++
			continue
		}

		folder, err := h.api.CreateFolder(ctx, copyNamePrefix+child.Name, destID)
		if err != nil {
			res.Errors = append(res.Errors, CopyError{ID: child.ID, Name: child.Name, Error: err.Error()})
			continue
		}
		res.CopiedFolders++

		grandchildren, err := h.api.ListChildren(ctx, child.ID, false)
		if err != nil {
			res.Errors = append(res.Errors, CopyError{ID: child.ID, Name: child.Name, Error: err.Error()})
			continue
		}
		h.copyChildren(ctx, grandchildren, folder.ID, res)
	}
}
