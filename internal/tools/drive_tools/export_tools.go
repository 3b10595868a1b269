package drive_tools

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/gworkspace-mcp/internal/drive"
	"github.com/teemow/gworkspace-mcp/internal/output"
	"github.com/teemow/gworkspace-mcp/internal/tools/args"
	"github.com/teemow/gworkspace-mcp/internal/tools/batch"
)

var errNoFileWriter = errors.New("writing exports to disk is not configured")

func exportFileTool() mcp.Tool {
	return mcp.NewTool("drive_export_file",
		mcp.WithDescription("Export a Google Docs, Sheets or Slides file. Without outputPath the content is returned base64 encoded."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("fileId",
			mcp.Required(),
			mcp.Description("ID of the file to export"),
		),
		mcp.WithString("format",
			mcp.Required(),
			mcp.Description("Export format"),
			mcp.Enum(drive.ExportFormats()...),
		),
		mcp.WithString("outputPath",
			mcp.Description("Local path to write the export to"),
		),
	)
}

func batchExportFilesTool() mcp.Tool {
	return mcp.NewTool("drive_batch_export_files",
		mcp.WithDescription("Export several files into a local directory as <name>.<format>. A failure does not stop the rest."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithArray("fileIds",
			mcp.Required(),
			mcp.Description("IDs of the files to export"),
			mcp.WithStringItems(),
		),
		mcp.WithString("format",
			mcp.Required(),
			mcp.Description("Export format"),
			mcp.Enum(drive.ExportFormats()...),
		),
		mcp.WithString("outputDir",
			mcp.Required(),
			mcp.Description("Local directory to write the exports to"),
		),
	)
}

type exportRequest struct {
	FileID     string
	Format     string
	MimeType   string
	OutputPath string
}

func parseFormat(a args.Args) (format, mimeType string, err error) {
	if format, err = a.Enum("format", drive.ExportFormats()); err != nil {
		return "", "", err
	}
	mimeType, _ = drive.ExportMimeType(format)
	return format, mimeType, nil
}

func parseExport(a args.Args) (exportRequest, error) {
	var req exportRequest
	var err error
	if req.FileID, err = a.String("fileId"); err != nil {
		return req, err
	}
	if req.Format, req.MimeType, err = parseFormat(a); err != nil {
		return req, err
	}
	if req.OutputPath, err = a.OptionalString("outputPath", ""); err != nil {
		return req, err
	}
	return req, nil
}

type exportResult struct {
	FileID   string `json:"fileId"`
	Format   string `json:"format"`
	MimeType string `json:"mimeType"`
	Size     int    `json:"size"`
	Path     string `json:"path,omitempty"`
	Content  string `json:"content,omitempty"`
}

func (h *handlers) exportFile(ctx context.Context, req exportRequest) (any, error) {
	data, err := h.api.Export(ctx, req.FileID, req.MimeType)
	if err != nil {
		return nil, err
	}

	res := exportResult{FileID: req.FileID, Format: req.Format, MimeType: req.MimeType, Size: len(data)}
	if req.OutputPath == "" {
		res.Content = base64.StdEncoding.EncodeToString(data)
		return res, nil
	}

	if h.files == nil {
		return nil, errNoFileWriter
	}
	if err := h.files.WriteFile(ctx, req.OutputPath, data); err != nil {
		return nil, err
	}
	res.Path = req.OutputPath
	return res, nil
}

type batchExportRequest struct {
	FileIDs   []string
	Format    string
	MimeType  string
	OutputDir string
}

func parseBatchExport(a args.Args) (batchExportRequest, error) {
	var req batchExportRequest
	var err error
	if req.FileIDs, err = a.StringSlice("fileIds"); err != nil {
		return req, err
	}
	if req.Format, req.MimeType, err = parseFormat(a); err != nil {
		return req, err
	}
	if req.OutputDir, err = a.String("outputDir"); err != nil {
		return req, err
	}
	return req, nil
}

// ExportedFile is one successful entry of a batch export.
type ExportedFile struct {
	ID   string `json:"id"`
	Size int    `json:"size"`
	Path string `json:"path"`
}

type batchExportResult struct {
	ExportedCount int                        `json:"exportedCount"`
	FailedCount   int                        `json:"failedCount"`
	Details       batch.Result[ExportedFile] `json:"details"`
}

func (h *handlers) batchExportFiles(ctx context.Context, req batchExportRequest) (any, error) {
	if h.files == nil {
		return nil, errNoFileWriter
	}

	// Files sharing a Drive name get their id appended so no export in the
	// batch overwrites another.
	used := make(map[string]bool, len(req.FileIDs))
	res := batch.Process(ctx, req.FileIDs, func(ctx context.Context, id string) (ExportedFile, error) {
		info, err := h.api.GetFile(ctx, id)
		if err != nil {
			return ExportedFile{}, err
		}
		data, err := h.api.Export(ctx, id, req.MimeType)
		if err != nil {
			return ExportedFile{}, err
		}

		name := output.FileName(info.Name, req.Format, id)
		if used[strings.ToLower(name)] {
			name = output.FileName(fmt.Sprintf("%s (%s)", info.Name, id), req.Format, id)
		}
		path := filepath.Join(req.OutputDir, name)
		if err := h.files.WriteFile(ctx, path, data); err != nil {
			return ExportedFile{}, err
		}
		used[strings.ToLower(name)] = true
		return ExportedFile{ID: id, Size: len(data), Path: path}, nil
	})
	h.batch.RecordBatchItems(ctx, "drive_batch_export_files", len(res.Success), len(res.Failed))

	return batchExportResult{
		ExportedCount: len(res.Success),
		FailedCount:   len(res.Failed),
		Details:       res,
	}, nil
}
