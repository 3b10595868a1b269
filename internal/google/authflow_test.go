package google

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbackHandler(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantCode   string
		wantErr    string
		wantResult bool
	}{
		{name: "success", query: "?state=s1&code=abc", wantStatus: http.StatusOK, wantCode: "abc", wantResult: true},
		{name: "state mismatch", query: "?state=other&code=abc", wantStatus: http.StatusBadRequest},
		{name: "denied", query: "?state=s1&error=access_denied", wantStatus: http.StatusBadRequest, wantErr: "access_denied", wantResult: true},
		{name: "missing code", query: "?state=s1", wantStatus: http.StatusBadRequest, wantErr: "did not include a code", wantResult: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := make(chan callbackResult, 1)
			rec := httptest.NewRecorder()
			callbackHandler("s1", results).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, CallbackPath+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if !tt.wantResult {
				assert.Empty(t, results)
				return
			}
			require.Len(t, results, 1)
			res := <-results
			assert.Equal(t, tt.wantCode, res.code)
			if tt.wantErr != "" {
				require.Error(t, res.err)
				assert.Contains(t, res.err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, res.err)
			}
		})
	}
}

func TestCallbackHandler_DeliversOnce(t *testing.T) {
	results := make(chan callbackResult, 1)
	h := callbackHandler("s1", results)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, CallbackPath+"?state=s1&code=first", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, CallbackPath+"?state=s1&code=second", nil))

	require.Len(t, results, 1)
	assert.Equal(t, "first", (<-results).code)
}

func TestRandomState(t *testing.T) {
	a, err := randomState()
	require.NoError(t, err)
	b, err := randomState()
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
