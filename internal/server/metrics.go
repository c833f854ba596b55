package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "resume_latex"

// Render modes recorded by documentsRendered.
const (
	modeLaTeX     = "latex"
	modeHighlight = "highlight"
	modeDownload  = "download"
)

type metrics struct {
	gatherer prometheus.Gatherer

	requestDuration   *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	requestsInFlight  prometheus.Gauge
	rateLimited       prometheus.Counter
	documentsRendered *prometheus.CounterVec
	renderDuration    prometheus.Histogram
	documentBytes     prometheus.Histogram
}

// newMetrics registers collectors on reg, or on a fresh registry when reg is nil.
func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if reg == nil {
		registry := prometheus.NewRegistry()
		reg, gatherer = registry, registry
	} else if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	m := &metrics{
		gatherer: gatherer,
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		requestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "in_flight_requests",
				Help:      "HTTP requests currently being served.",
			},
		),
		rateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "rate_limited_total",
				Help:      "Requests rejected by the rate limiter.",
			},
		),
		documentsRendered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "render",
				Name:      "documents_total",
				Help:      "LaTeX documents rendered, by output mode.",
			},
			[]string{"mode"},
		),
		renderDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "render",
				Name:      "duration_seconds",
				Help:      "Time spent assembling a document.",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
			},
		),
		documentBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "render",
				Name:      "document_bytes",
				Help:      "Size of rendered documents.",
				Buckets:   prometheus.ExponentialBuckets(4096, 2, 8),
			},
		),
	}

	for _, c := range []prometheus.Collector{
		m.requestDuration, m.requestTotal, m.requestsInFlight, m.rateLimited,
		m.documentsRendered, m.renderDuration, m.documentBytes,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *metrics) observeRender(mode string, started time.Time, size int) {
	m.documentsRendered.WithLabelValues(mode).Inc()
	m.renderDuration.Observe(time.Since(started).Seconds())
	m.documentBytes.Observe(float64(size))
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withMetrics records request counts and latency per route pattern.
func (s *Server) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.metrics.requestsInFlight.Inc()
		defer s.metrics.requestsInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		// The mux fills in Pattern; unmatched paths share one label.
		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		labels := prometheus.Labels{
			"method": r.Method,
			"path":   path,
			"status": strconv.Itoa(rec.status),
		}

		s.metrics.requestDuration.With(labels).Observe(time.Since(start).Seconds())
		s.metrics.requestTotal.With(labels).Inc()
	})
}
