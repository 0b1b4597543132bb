package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "resume_builder"

// Metrics holds the server's Prometheus collectors.
type Metrics struct {
	registry       *prometheus.Registry
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	chatReplies    *prometheus.CounterVec
	upstreamErrors prometheus.Counter
}

// NewMetrics creates the collectors and registers them with registry.
func NewMetrics(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "path", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		chatReplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "chat_replies_total",
			Help:      "Model replies by parsed kind.",
		}, []string{"kind"}),
		upstreamErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "upstream_errors_total",
			Help:      "Failed calls to the model provider.",
		}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.duration, m.chatReplies, m.upstreamErrors} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	route := routeLabel(path)
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveReply counts a parsed model reply.
func (m *Metrics) ObserveReply(kind parsing.Kind) {
	m.chatReplies.WithLabelValues(string(kind)).Inc()
}

// ObserveUpstreamError counts a failed provider call.
func (m *Metrics) ObserveUpstreamError() {
	m.upstreamErrors.Inc()
}

// routeLabel keeps label cardinality bounded for unknown paths.
func routeLabel(path string) string {
	switch path {
	case "/api/chat", "/api/download-resume", "/api/generate-markdown", "/api/render", "/health", "/metrics":
		return path
	}
	if strings.HasPrefix(path, "/api/") {
		return "/api/other"
	}
	return "other"
}
