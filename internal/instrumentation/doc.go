// Package instrumentation wires OpenTelemetry metrics and tracing for the
// gworkspace-mcp server.
//
// # Metrics
//
//   - mcp_tool_invocations_total, mcp_tool_duration_seconds: by tool and status
//   - google_api_operations_total, google_api_operation_duration_seconds:
//     by service (drive, docs, sheets), operation and status
//   - mcp_batch_items_total: per-item outcomes of batch and recursive tools
//   - oauth_token_refresh_total: refresh token exchanges by result
//   - http_requests_total, http_request_duration_seconds: streamable HTTP transport
//
// Metrics are exported for Prometheus scraping by default. OTLP and stdout
// exporters are available for metrics and traces.
//
// # Configuration
//
//   - INSTRUMENTATION_ENABLED (default: true)
//   - METRICS_EXPORTER: prometheus, otlp, stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout, none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT, OTEL_EXPORTER_OTLP_INSECURE
//   - OTEL_TRACES_SAMPLER_ARG (default: 0.1)
//   - OTEL_SERVICE_NAME (default: gworkspace-mcp)
//   - AUDIT_LOGGING_ENABLED (default: true)
package instrumentation
