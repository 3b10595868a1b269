package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := NewMetrics(provider.Meter("test"))
	require.NoError(t, err)
	return m, reader
}

func collectSum(t *testing.T, reader *sdkmetric.ManualReader, name string, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	want := attribute.NewSet(attrs...)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			for _, dp := range sum.DataPoints {
				if dp.Attributes.Equals(&want) {
					return dp.Value
				}
			}
		}
	}
	return 0
}

func TestMetrics_RecordToolInvocation(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordToolInvocation(ctx, "drive_search", StatusSuccess, 20*time.Millisecond)
	m.RecordToolInvocation(ctx, "drive_search", StatusSuccess, 30*time.Millisecond)
	m.RecordToolInvocation(ctx, "drive_search", StatusError, time.Millisecond)

	assert.Equal(t, int64(2), collectSum(t, reader, "mcp_tool_invocations_total",
		attribute.String(attrTool, "drive_search"), attribute.String(attrStatus, StatusSuccess)))
	assert.Equal(t, int64(1), collectSum(t, reader, "mcp_tool_invocations_total",
		attribute.String(attrTool, "drive_search"), attribute.String(attrStatus, StatusError)))
}

func TestMetrics_RecordGoogleAPIOperation(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordGoogleAPIOperation(context.Background(), ServiceSheets, OperationUpdate, StatusSuccess, time.Second)

	assert.Equal(t, int64(1), collectSum(t, reader, "google_api_operations_total",
		attribute.String(attrService, ServiceSheets),
		attribute.String(attrOperation, OperationUpdate),
		attribute.String(attrStatus, StatusSuccess)))
}

func TestMetrics_RecordBatchItems(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordBatchItems(context.Background(), "drive_batch_move_files", 3, 1)
	m.RecordBatchItems(context.Background(), "drive_batch_move_files", 0, 0)

	assert.Equal(t, int64(3), collectSum(t, reader, "mcp_batch_items_total",
		attribute.String(attrTool, "drive_batch_move_files"), attribute.String(attrStatus, StatusSuccess)))
	assert.Equal(t, int64(1), collectSum(t, reader, "mcp_batch_items_total",
		attribute.String(attrTool, "drive_batch_move_files"), attribute.String(attrStatus, StatusError)))
}

func TestMetrics_RecordOAuthTokenRefreshAndHTTP(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordOAuthTokenRefresh(ctx, OAuthResultFailure)
	m.RecordHTTPRequest(ctx, "POST", "/mcp", 200, 5*time.Millisecond)

	assert.Equal(t, int64(1), collectSum(t, reader, "oauth_token_refresh_total",
		attribute.String(attrResult, OAuthResultFailure)))
	assert.Equal(t, int64(1), collectSum(t, reader, "http_requests_total",
		attribute.String(attrMethod, "POST"),
		attribute.String(attrPath, "/mcp"),
		attribute.String(attrStatus, "200")))
}

func TestMetrics_ZeroValueIsNoop(t *testing.T) {
	ctx := context.Background()

	var nilMetrics *Metrics
	zero := &Metrics{}

	assert.NotPanics(t, func() {
		for _, m := range []*Metrics{nilMetrics, zero} {
			m.RecordToolInvocation(ctx, "docs_get_document", StatusSuccess, time.Second)
			m.RecordGoogleAPIOperation(ctx, ServiceDocs, OperationGet, StatusSuccess, time.Second)
			m.RecordOAuthTokenRefresh(ctx, OAuthResultSuccess)
			m.RecordHTTPRequest(ctx, "GET", "/healthz", 200, time.Millisecond)
			m.RecordBatchItems(ctx, "drive_copy_folder", 1, 1)
		}
	})
}
