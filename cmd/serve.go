package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/teemow/gworkspace-mcp/internal/config"
	"github.com/teemow/gworkspace-mcp/internal/instrumentation"
	"github.com/teemow/gworkspace-mcp/internal/logging"
	"github.com/teemow/gworkspace-mcp/internal/server"
)

// serveOptions hold the serve flags. A flag only overrides the config when
// it was set on the command line.
type serveOptions struct {
	transport      string
	httpAddr       string
	readOnly       bool
	debug          bool
	logFormat      string
	metricsEnabled bool
	metricsAddr    string
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server with the Google Drive, Docs
and Sheets tools.

Supported transports:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP on /mcp with /healthz and /readyz

Use --read-only to register only tools that do not modify Google content.
With the HTTP transport, Prometheus metrics are served on --metrics-addr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			opts.apply(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cfg)
		},
	}

	bindServeFlags(cmd, &opts)
	return cmd
}

func bindServeFlags(cmd *cobra.Command, opts *serveOptions) {
	defaults := config.Default()

	cmd.Flags().StringVar(&opts.transport, "transport", defaults.Server.Transport, "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&opts.httpAddr, "http-addr", defaults.Server.HTTPAddr, "HTTP listen address (streamable-http only)")
	cmd.Flags().BoolVar(&opts.readOnly, "read-only", false, "Register only read-only tools")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", defaults.Server.LogFormat, "Log format: text or json")
	cmd.Flags().BoolVar(&opts.metricsEnabled, "metrics-enabled", defaults.Metrics.Enabled, "Serve Prometheus metrics (streamable-http only)")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", defaults.Metrics.Addr, "Metrics listen address")
}

func (o serveOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("transport") {
		cfg.Server.Transport = o.transport
	}
	if flags.Changed("http-addr") {
		cfg.Server.HTTPAddr = o.httpAddr
	}
	if flags.Changed("read-only") {
		cfg.Server.ReadOnly = o.readOnly
	}
	if flags.Changed("debug") {
		cfg.Server.Debug = o.debug
	}
	if flags.Changed("log-format") {
		cfg.Server.LogFormat = o.logFormat
	}
	if flags.Changed("metrics-enabled") {
		cfg.Metrics.Enabled = o.metricsEnabled
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = o.metricsAddr
	}
}

func runServe(cfg config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	if !cfg.Google.HasCredentials() {
		logger.Warn("Google credentials are incomplete, tool calls will fail until they are set",
			slog.Any("missing", cfg.Google.MissingCredentials()))
	}

	a, err := newApp(ctx, cfg, logger, provider.Metrics())
	if err != nil {
		return err
	}

	serverContext := server.NewServerContext(ctx,
		server.WithDriveClient(a.drive),
		server.WithDocsClient(a.docs),
		server.WithSheetsClient(a.sheets),
		server.WithExportWriter(a.writer),
		server.WithCredentialsConfigured(cfg.Google.HasCredentials()),
		server.WithMetrics(provider.Metrics()),
		server.WithAuditLogger(instrumentation.NewAuditLoggerWithConfig(logger, instrConfig.AuditLogging)),
		server.WithLogger(logger),
	)
	defer serverContext.Shutdown()

	mcpSrv := mcpserver.NewMCPServer("gworkspace-mcp", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
	)

	toolCount := a.registry.Mount(mcpSrv, serverContext, cfg.Server.ReadOnly)
	logger.Info("registered tools",
		slog.Int("count", toolCount),
		slog.Bool("read_only", cfg.Server.ReadOnly),
		slog.String("transport", cfg.Server.Transport))

	switch cfg.Server.Transport {
	case config.TransportStdio:
		return runStdioServer(mcpSrv)
	case config.TransportStreamableHTTP:
		return runStreamableHTTPServer(ctx, mcpSrv, serverContext, cfg, provider, toolCount)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", cfg.Server.Transport)
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	if err := mcpserver.ServeStdio(mcpSrv); err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, cfg config.Config, provider *instrumentation.Provider, toolCount int) error {
	logger := sc.Logger()

	health := server.NewHealthChecker(sc, version, toolCount)
	httpServer := server.NewHTTPServer(mcpSrv, sc, health, cfg.Server.HTTPAddr)

	var metricsServer *server.MetricsServer
	if cfg.Metrics.Enabled && provider.ServesPrometheus() {
		var err error
		metricsServer, err = server.NewMetricsServer(cfg.Metrics.Addr, provider, logger)
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
	}

	serverDone := make(chan error, 2)
	go func() {
		serverDone <- httpServer.Start()
	}()
	if metricsServer != nil {
		go func() {
			serverDone <- metricsServer.Start()
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping HTTP server")
	case err := <-serverDone:
		if err != nil {
			runErr = fmt.Errorf("server stopped with error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", logging.Err(err))
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown failed", logging.Err(err))
		}
	}
	return runErr
}
