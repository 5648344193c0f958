// Package metrics provides Prometheus metrics for the profile dashboard service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 看板服务指标
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	selectionChanges *prometheus.CounterVec
	renderedRows     *prometheus.HistogramVec
	activeSessions   prometheus.Gauge
	briefingsTotal   *prometheus.CounterVec
}

// New 创建并注册指标。registry 为 nil 时新建一个独立 registry。
func New(registry *prometheus.Registry) (*Metrics, error) {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := &Metrics{registry: registry}

	m.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_requests_total",
			Help: "Total number of API requests by operation and status code",
		},
		[]string{"operation", "code"},
	)
	m.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "profile_request_duration_seconds",
			Help:    "API request latency",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"operation"},
	)
	m.selectionChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_selection_changes_total",
			Help: "Total number of selection mutations by facet",
		},
		[]string{"facet"}, // entity, zone, type
	)
	m.renderedRows = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "profile_rendered_rows",
			Help:    "Rows handed to the renderer per dashboard region",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
		},
		[]string{"region"},
	)
	m.activeSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "profile_active_sessions",
		Help: "Sessions created minus sessions ended",
	})
	m.briefingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_briefings_total",
			Help: "Total number of briefing generations by status",
		},
		[]string{"status"},
	)

	for _, c := range []prometheus.Collector{
		m.requestsTotal, m.requestDuration, m.selectionChanges,
		m.renderedRows, m.activeSessions, m.briefingsTotal,
		collectors.NewGoCollector(),
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Handler 暴露 /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest 记录一次请求
func (m *Metrics) ObserveRequest(operation, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(operation, code).Inc()
	m.requestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (m *Metrics) SelectionChanged(facet string) {
	if m == nil {
		return
	}
	m.selectionChanges.WithLabelValues(facet).Inc()
}

func (m *Metrics) RowsRendered(region string, n int) {
	if m == nil {
		return
	}
	m.renderedRows.WithLabelValues(region).Observe(float64(n))
}

func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
}

func (m *Metrics) SessionEnded() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

func (m *Metrics) BriefingDone(status string) {
	if m == nil {
		return
	}
	m.briefingsTotal.WithLabelValues(status).Inc()
}
