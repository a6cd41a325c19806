package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sandevgo/truthlens/internal/service/agent"
)

const namespace = "truthlens"

// Metrics records dispatcher and tool activity on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	tools           *prometheus.CounterVec
	toolDuration    *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Analysis requests by branch and outcome.",
		}, []string{"branch", "outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Time spent dispatching one analysis request.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 40, 80, 120},
		}, []string{"branch"}),
		tools: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_invocations_total",
			Help:      "Capability tool invocations by tool and outcome.",
		}, []string{"tool", "outcome"}),
		toolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_duration_seconds",
			Help:      "Capability tool latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.tools,
		m.toolDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveRequest(branch, outcome string, elapsed time.Duration) {
	m.requests.WithLabelValues(branch, outcome).Inc()
	m.requestDuration.WithLabelValues(branch).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveTool(tool, outcome string, elapsed time.Duration) {
	m.tools.WithLabelValues(tool, outcome).Inc()
	if outcome != agent.ToolOutcomeUnknown {
		m.toolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
