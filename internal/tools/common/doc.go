// Package common wraps MCP tool handlers with the tracing, metrics and audit
// logging every tool shares.
package common
