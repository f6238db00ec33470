//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/wafflemkr/points/internal/adapter/postgres/testhelper"
	"github.com/wafflemkr/points/internal/app"
	"github.com/wafflemkr/points/internal/config"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	searchPath := filepath.Join(t.TempDir(), "search.db")
	if backend == config.SearchBackendBleve {
		searchPath = filepath.Join(t.TempDir(), "search")
	}
	return &config.Config{
		Server: config.ServerConfig{
			ShutdownTimeout: 5 * time.Second,
			MaxBodyBytes:    1 << 20,
			MaxHeaderBytes:  1 << 16,
		},
		Database: config.DatabaseConfig{
			DSN:             testhelper.DSN(),
			MaxConns:        5,
			MinConns:        1,
			MaxConnLifetime: time.Hour,
			MaxConnIdleTime: time.Minute,
		},
		Search: config.SearchConfig{
			Backend:    backend,
			Path:       searchPath,
			MaxResults: 1000,
		},
		Log: config.LogConfig{Level: "debug", Format: "text"},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,DELETE,OPTIONS",
			AllowedHeaders: "Content-Type,X-Request-Id",
			ExposedHeaders: "Location,Link,X-Total-Count,X-Request-Id",
			MaxAge:         600,
		},
		App:        config.AppConfig{Name: "pointsApp"},
		Pagination: config.PaginationConfig{DefaultSize: 20, MaxSize: 200},
	}
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper) and a fresh SQLite index.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	return setupTestServerWith(t, config.SearchBackendSQLite)
}

func setupTestServerWith(t *testing.T, backend string) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	a, err := app.New(context.Background(), testConfig(t, backend), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: srv.Client(), Pool: pool}
}

// do sends a request with an optional JSON body and returns the response
// with its body fully read.
func (ts *testServer) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

// decode unmarshals raw into a value of type T.
func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), "body: %s", raw)
	return v
}

func (ts *testServer) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	err := ts.Pool.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	require.NoError(t, err)
	return n
}
