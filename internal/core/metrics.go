// AngelaMos | 2026
// metrics.go

package core

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many instances as
// they like. All recording methods are safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	requests          *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	inferenceDuration prometheus.Histogram
	predictions       *prometheus.CounterVec
	uploadRejections  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "glowguard",
				Name:      "http_requests_total",
				Help:      "Total HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "glowguard",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		inferenceDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "glowguard",
				Name:      "inference_duration_seconds",
				Help:      "Classifier forward pass latency.",
				Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
		),
		predictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "glowguard",
				Name:      "predictions_total",
				Help:      "Stored predictions by disease and severity.",
			},
			[]string{"disease", "severity", "degraded"},
		),
		uploadRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "glowguard",
				Name:      "upload_rejections_total",
				Help:      "Rejected image uploads by reason.",
			},
			[]string{"reason"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.inferenceDuration,
		m.predictions,
		m.uploadRejections,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RegisterDatabase exports connection pool statistics for db.
func (m *Metrics) RegisterDatabase(db *sql.DB) {
	if m == nil || db == nil {
		return
	}
	m.registry.MustRegister(collectors.NewDBStatsCollector(db, "glowguard"))
}

// RegisterRedis exports connection pool statistics for r when Redis is
// configured.
func (m *Metrics) RegisterRedis(r *Redis) {
	if m == nil || !r.Enabled() {
		return
	}

	pool := func(name, help string, read func() float64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "glowguard",
			Subsystem: "redis_pool",
			Name:      name,
			Help:      help,
		}, read)
	}

	m.registry.MustRegister(
		pool("total_conns", "Open Redis connections.", func() float64 {
			return float64(r.Client.PoolStats().TotalConns)
		}),
		pool("idle_conns", "Idle Redis connections.", func() float64 {
			return float64(r.Client.PoolStats().IdleConns)
		}),
		pool("timeouts", "Times a pool connection wait timed out.", func() float64 {
			return float64(r.Client.PoolStats().Timeouts)
		}),
	)
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveRequest(
	method, route string,
	status int,
	elapsed time.Duration,
) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, statusClass(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveInference(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.inferenceDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) RecordPrediction(disease, severity string, degraded bool) {
	if m == nil {
		return
	}
	d := "false"
	if degraded {
		d = "true"
	}
	m.predictions.WithLabelValues(disease, severity, d).Inc()
}

func (m *Metrics) RecordUploadRejection(reason string) {
	if m == nil {
		return
	}
	m.uploadRejections.WithLabelValues(reason).Inc()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
