package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/teemow/gworkspace-mcp/internal/docs"
	"github.com/teemow/gworkspace-mcp/internal/drive"
	"github.com/teemow/gworkspace-mcp/internal/instrumentation"
	"github.com/teemow/gworkspace-mcp/internal/output"
	"github.com/teemow/gworkspace-mcp/internal/sheets"
)

// ServerContext holds the dependencies handed to every tool. All fields are
// set by options at construction and read-only afterwards.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	driveClient  *drive.Client
	docsClient   *docs.Client
	sheetsClient *sheets.Client
	exportWriter *output.Writer

	credentialsConfigured bool

	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger
	logger      *slog.Logger

	mu       sync.RWMutex
	shutdown bool
}

// Option configures a ServerContext.
type Option func(*ServerContext)

// WithDriveClient sets the Drive client.
func WithDriveClient(c *drive.Client) Option {
	return func(sc *ServerContext) { sc.driveClient = c }
}

// WithDocsClient sets the Docs client.
func WithDocsClient(c *docs.Client) Option {
	return func(sc *ServerContext) { sc.docsClient = c }
}

// WithSheetsClient sets the Sheets client.
func WithSheetsClient(c *sheets.Client) Option {
	return func(sc *ServerContext) { sc.sheetsClient = c }
}

// WithExportWriter sets the writer used for exports to local disk.
func WithExportWriter(w *output.Writer) Option {
	return func(sc *ServerContext) { sc.exportWriter = w }
}

// WithCredentialsConfigured records whether Google credentials were supplied.
// The server still starts without them; readiness reports the difference.
func WithCredentialsConfigured(ok bool) Option {
	return func(sc *ServerContext) { sc.credentialsConfigured = ok }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(sc *ServerContext) { sc.metrics = m }
}

// WithAuditLogger sets the audit logger for tool invocations.
func WithAuditLogger(al *instrumentation.AuditLogger) Option {
	return func(sc *ServerContext) { sc.auditLogger = al }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(sc *ServerContext) { sc.logger = l }
}

// NewServerContext creates a server context derived from ctx.
func NewServerContext(ctx context.Context, opts ...Option) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)
	sc := &ServerContext{
		ctx:    shutdownCtx,
		cancel: cancel,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(sc)
	}
	return sc
}

// Context is cancelled on Shutdown.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// DriveClient returns the Drive client.
func (sc *ServerContext) DriveClient() *drive.Client {
	return sc.driveClient
}

// DocsClient returns the Docs client.
func (sc *ServerContext) DocsClient() *docs.Client {
	return sc.docsClient
}

// SheetsClient returns the Sheets client.
func (sc *ServerContext) SheetsClient() *sheets.Client {
	return sc.sheetsClient
}

// ExportWriter returns the writer for exports to local disk.
func (sc *ServerContext) ExportWriter() *output.Writer {
	return sc.exportWriter
}

// CredentialsConfigured reports whether Google credentials were supplied.
func (sc *ServerContext) CredentialsConfigured() bool {
	return sc.credentialsConfigured
}

// Metrics returns the metrics recorder, or nil.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// AuditLogger returns the audit logger, or nil.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	return sc.auditLogger
}

// Logger returns the logger. It is never nil.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// IsShutdown returns whether Shutdown was called.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the context. It is safe to call more than once.
func (sc *ServerContext) Shutdown() {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return
	}
	sc.shutdown = true
	sc.cancel()
}
