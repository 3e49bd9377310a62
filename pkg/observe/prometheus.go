// Package observe provides a prometheus-backed Observer for the Typesense
// client, exporting request, retry and node health metrics.
package observe

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/foomo/typesense-client/pkg/typesense"
)

// Prometheus implements typesense.Observer backed by prometheus collectors.
type Prometheus struct {
	requests   *prometheus.CounterVec
	retries    *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	nodeHealth *prometheus.GaugeVec
}

// NewPrometheus builds the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "typesense",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Request attempts by method and HTTP status; status 0 means no response was received.",
		}, []string{"method", "status"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "typesense",
			Subsystem: "client",
			Name:      "retries_total",
			Help:      "Retried attempts by method.",
		}, []string{"method"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "typesense",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Attempt duration by method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		nodeHealth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "typesense",
			Subsystem: "client",
			Name:      "node_healthy",
			Help:      "Per-node health as seen by the client: 1 healthy, 0 unhealthy.",
		}, []string{"node"}),
	}
	reg.MustRegister(p.requests, p.retries, p.duration, p.nodeHealth)
	return p
}

func (p *Prometheus) OnRequest(method, endpoint string, status int, duration time.Duration) {
	p.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	p.duration.WithLabelValues(method).Observe(duration.Seconds())
}

func (p *Prometheus) OnRetry(method, endpoint string, attempt uint) {
	p.retries.WithLabelValues(method).Inc()
}

func (p *Prometheus) OnNodeHealthChange(node typesense.Node, healthy bool) {
	value := 0.0
	if healthy {
		value = 1.0
	}
	p.nodeHealth.WithLabelValues(node.URL()).Set(value)
}
