//go:build e2e

package e2e_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE2E_Health(t *testing.T) {
	ts := setupTestServer(t)

	for _, path := range []string{"/live", "/ready", "/health"} {
		resp, raw := ts.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "%s: %s", path, raw)
	}

	_, raw := ts.do(t, http.MethodGet, "/health", nil)
	body := decode[map[string]any](t, raw)
	components, ok := body["components"].(map[string]any)
	require.True(t, ok, "body: %s", raw)
	assert.Contains(t, components, "database")
	assert.Contains(t, components, "searchIndex")
}

func TestE2E_Metrics(t *testing.T) {
	ts := setupTestServer(t)

	resp, _ := ts.do(t, http.MethodGet, "/api/points?page=0&size=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := ts.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `points_http_requests_total{method="GET",path="/api/points",status="200"}`)
}

func TestE2E_RequestID(t *testing.T) {
	ts := setupTestServer(t)

	resp, _ := ts.do(t, http.MethodGet, "/live", nil)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}
