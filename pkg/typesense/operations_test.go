package typesense

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationsIsHealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := newTestClient(t, testConfig(t, server))

	healthy, err := client.Operations().IsHealthy(context.Background())
	require.NoError(t, err)
	assert.True(t, healthy)
}

func TestOperationsSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/operations/snapshot", r.URL.Path)
		assert.Equal(t, "/tmp/typesense-snapshot", r.URL.Query().Get("snapshot_path"))
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client := newTestClient(t, testConfig(t, server))

	response, err := client.Operations().Snapshot(context.Background(), SnapshotParams{
		SnapshotPath: "/tmp/typesense-snapshot",
	})
	require.NoError(t, err)
	assert.True(t, response.Success)
}

func TestOperationsVoteAndCompact(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client := newTestClient(t, testConfig(t, server))
	ctx := context.Background()

	_, err := client.Operations().Vote(ctx)
	require.NoError(t, err)
	_, err = client.Operations().CompactDB(ctx)
	require.NoError(t, err)
	_, err = client.Operations().ClearCache(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"/operations/vote", "/operations/db/compact", "/operations/cache/clear"}, paths)
}

func TestOperationsToggleSlowRequestLog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/config", r.URL.Path)

		var params SlowRequestLogParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.EqualValues(t, 2000, params.LogSlowRequestsTimeMs)

		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client := newTestClient(t, testConfig(t, server))

	response, err := client.Operations().ToggleSlowRequestLog(context.Background(), SlowRequestLogParams{
		LogSlowRequestsTimeMs: 2000,
	})
	require.NoError(t, err)
	assert.True(t, response.Success)
}

func TestOperationsDebugMetricsStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/debug":
			_, _ = w.Write([]byte(`{"state":1,"version":"27.1"}`))
		case "/metrics.json":
			_, _ = w.Write([]byte(`{"system_cpu_active_percentage":"1.00","system_memory_used_bytes":"1024"}`))
		case "/stats.json":
			_, _ = w.Write([]byte(`{"requests_per_second":42.5,"latency_ms":{"GET /health":0.1}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := newTestClient(t, testConfig(t, server))
	ctx := context.Background()

	debug, err := client.Operations().Debug(ctx)
	require.NoError(t, err)
	assert.Equal(t, "27.1", debug.Version)

	metrics, err := client.Operations().Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1024", metrics["system_memory_used_bytes"])

	stats, err := client.Operations().Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42.5, stats["requests_per_second"])
}
