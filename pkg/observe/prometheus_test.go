package observe

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foomo/typesense-client/pkg/typesense"
)

func TestPrometheusCountsRequestsAndRetries(t *testing.T) {
	registry := prometheus.NewRegistry()
	observer := NewPrometheus(registry)

	observer.OnRequest("GET", "/health", 200, 10*time.Millisecond)
	observer.OnRequest("GET", "/health", 200, 20*time.Millisecond)
	observer.OnRequest("POST", "/collections", 503, 5*time.Millisecond)
	observer.OnRetry("POST", "/collections", 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(observer.requests.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(observer.requests.WithLabelValues("POST", "503")))
	assert.Equal(t, 1.0, testutil.ToFloat64(observer.retries.WithLabelValues("POST")))
}

func TestPrometheusTracksNodeHealth(t *testing.T) {
	registry := prometheus.NewRegistry()
	observer := NewPrometheus(registry)

	node := typesense.Node{Host: "ts-1.example.com", Port: 8108, Protocol: "https"}

	observer.OnNodeHealthChange(node, false)
	assert.Equal(t, 0.0, testutil.ToFloat64(observer.nodeHealth.WithLabelValues(node.URL())))

	observer.OnNodeHealthChange(node, true)
	assert.Equal(t, 1.0, testutil.ToFloat64(observer.nodeHealth.WithLabelValues(node.URL())))
}

func TestPrometheusRegistersCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	observer := NewPrometheus(registry)

	observer.OnRequest("GET", "/health", 200, time.Millisecond)
	observer.OnNodeHealthChange(typesense.Node{Host: "localhost", Port: 8108, Protocol: "http"}, true)

	families, err := registry.Gather()
	require.NoError(t, err)

	var names []string
	for _, family := range families {
		names = append(names, family.GetName())
	}
	assert.Contains(t, names, "typesense_client_requests_total")
	assert.Contains(t, names, "typesense_client_request_duration_seconds")
	assert.Contains(t, names, "typesense_client_node_healthy")
}
