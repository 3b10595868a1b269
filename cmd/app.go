package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/teemow/gworkspace-mcp/internal/config"
	"github.com/teemow/gworkspace-mcp/internal/docs"
	"github.com/teemow/gworkspace-mcp/internal/drive"
	"github.com/teemow/gworkspace-mcp/internal/google"
	"github.com/teemow/gworkspace-mcp/internal/instrumentation"
	"github.com/teemow/gworkspace-mcp/internal/logging"
	"github.com/teemow/gworkspace-mcp/internal/output"
	"github.com/teemow/gworkspace-mcp/internal/sheets"
	"github.com/teemow/gworkspace-mcp/internal/tools"
	"github.com/teemow/gworkspace-mcp/internal/tools/docs_tools"
	"github.com/teemow/gworkspace-mcp/internal/tools/drive_tools"
	"github.com/teemow/gworkspace-mcp/internal/tools/sheets_tools"
)

// loadConfig reads the config file named by path or GWORKSPACE_MCP_CONFIG and
// overlays the environment.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		path = os.Getenv(config.EnvConfigFile)
	}
	return config.Load(path)
}

func newLogger(cfg config.Config) *slog.Logger {
	// stdout belongs to the stdio transport.
	return logging.New(os.Stderr, logging.Options{
		Debug:  cfg.Server.Debug,
		Format: logging.Format(cfg.Server.LogFormat),
	})
}

// services are the collaborators the tool catalogue is built from.
type services struct {
	Drive  drive_tools.API
	Docs   docs_tools.API
	Sheets sheets_tools.API
	Files  drive_tools.FileWriter
	Batch  drive_tools.BatchRecorder
}

// newRegistry registers the Drive, Sheets and Docs tools in catalogue order.
func newRegistry(logger *slog.Logger, svc services) (*tools.Registry, error) {
	registry := tools.NewRegistry(logger)
	catalogue := slices.Concat(
		drive_tools.Tools(drive_tools.Deps{Drive: svc.Drive, Files: svc.Files, Batch: svc.Batch}),
		sheets_tools.Tools(svc.Sheets),
		docs_tools.Tools(svc.Docs),
	)
	if err := registry.Register(catalogue...); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}
	return registry, nil
}

// app is everything a command needs to run tools against Google.
type app struct {
	drive    *drive.Client
	docs     *docs.Client
	sheets   *sheets.Client
	writer   *output.Writer
	registry *tools.Registry
}

// newApp builds the API clients and the tool registry. Missing credentials
// are not an error here; the first remote call reports them instead.
func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger, metrics *instrumentation.Metrics) (*app, error) {
	var recorder google.RefreshRecorder
	if metrics != nil {
		recorder = metrics
	}
	httpClient := google.NewHTTPClient(ctx, google.Credentials{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RefreshToken: cfg.Google.RefreshToken,
	}, recorder)

	driveClient, err := drive.NewClient(ctx, httpClient)
	if err != nil {
		return nil, err
	}
	docsClient, err := docs.NewClient(ctx, httpClient)
	if err != nil {
		return nil, err
	}
	sheetsClient, err := sheets.NewClient(ctx, httpClient)
	if err != nil {
		return nil, err
	}

	a := &app{
		drive:  driveClient,
		docs:   docsClient,
		sheets: sheetsClient,
		writer: output.NewWriter(cfg.Export.LockTimeout),
	}

	svc := services{
		Drive:  driveClient,
		Docs:   docsClient,
		Sheets: sheetsClient,
		Files:  a.writer,
	}
	if metrics != nil {
		svc.Batch = metrics
	}
	a.registry, err = newRegistry(logger, svc)
	if err != nil {
		return nil, err
	}
	return a, nil
}
