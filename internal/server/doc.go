// Package server holds the runtime pieces shared by the transports.
//
// ServerContext carries the Google API clients and the observability hooks
// and is built once at start-up; nothing in it changes afterwards except the
// shutdown flag. HTTPServer exposes the MCP endpoint over streamable HTTP
// next to the health probes, and MetricsServer serves Prometheus metrics on
// a separate listener.
package server
