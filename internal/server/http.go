package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// MCPEndpointPath is where the streamable HTTP transport is mounted.
const MCPEndpointPath = "/mcp"

const otherRoute = "other"

// knownRoutes keeps the path label on HTTP metrics bounded.
var knownRoutes = map[string]bool{
	MCPEndpointPath:    true,
	"/healthz":         true,
	"/readyz":          true,
	"/healthz/detailed": true,
}

// HTTPServer serves the MCP streamable HTTP transport next to the health
// probes.
type HTTPServer struct {
	httpServer *http.Server
	health     *HealthChecker
	sc         *ServerContext
}

// NewHTTPServer mounts mcpSrv on /mcp. There is no write timeout because a
// single tool call may export or copy many files.
func NewHTTPServer(mcpSrv *mcpserver.MCPServer, sc *ServerContext, health *HealthChecker, addr string) *HTTPServer {
	mux := http.NewServeMux()
	mux.Handle(MCPEndpointPath, mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithEndpointPath(MCPEndpointPath),
	))
	health.RegisterHealthEndpoints(mux)

	var handler http.Handler = mux
	handler = requestMetrics(sc, handler)
	handler = otelhttp.NewHandler(handler, "mcp-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + routeLabel(r.URL.Path)
		}),
	)

	return &HTTPServer{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		health: health,
		sc:     sc,
	}
}

// Handler returns the fully wrapped handler.
func (s *HTTPServer) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the listen address.
func (s *HTTPServer) Addr() string {
	return s.httpServer.Addr
}

// Start blocks until the server stops. A graceful shutdown returns nil.
func (s *HTTPServer) Start() error {
	s.sc.Logger().Info("starting MCP HTTP server", "addr", s.httpServer.Addr, "endpoint", MCPEndpointPath)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown marks the server unready and drains open connections.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.health.SetReady(false)
	s.sc.Logger().Info("shutting down MCP HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func routeLabel(path string) string {
	if knownRoutes[path] {
		return path
	}
	return otherRoute
}

func requestMetrics(sc *ServerContext, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		sc.Metrics().RecordHTTPRequest(r.Context(), r.Method, routeLabel(r.URL.Path), rec.status, time.Since(start))
	})
}

// statusRecorder captures the response code. Flush is forwarded so that
// server-sent events on the streamable transport are not buffered.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
