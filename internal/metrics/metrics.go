package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus registry and the bot's meters.
type Metrics struct {
	Registry            *prometheus.Registry
	InteractionsTotal   *prometheus.CounterVec
	SignatureFailures   prometheus.Counter
	ContinuationsTotal  *prometheus.CounterVec
	CatalogDuration     *prometheus.HistogramVec
	FollowUpsTotal      *prometheus.CounterVec
	QueueDepth          prometheus.Gauge
	ContinuationsActive prometheus.Gauge
}

// New creates a private registry so tests can build independent instances.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	interactions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ranobebot_interactions_total",
		Help: "Verified interactions by kind and synchronous outcome.",
	}, []string{"kind", "outcome"})

	sigFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ranobebot_signature_failures_total",
		Help: "Requests rejected by signature verification.",
	})

	continuations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ranobebot_continuations_total",
		Help: "Completed continuations by flow and result.",
	}, []string{"flow", "result"})

	catalogDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ranobebot_catalog_request_duration_seconds",
		Help:    "Duration of catalog requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "status"})

	followUps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ranobebot_followups_total",
		Help: "Follow-up deliveries by mode and status.",
	}, []string{"mode", "status"})

	queueDepth := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ranobebot_worker_queue_depth",
		Help: "Continuations waiting for a worker.",
	})

	active := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ranobebot_continuations_active",
		Help: "Continuations currently running.",
	})

	reg.MustRegister(interactions, sigFailures, continuations, catalogDuration, followUps, queueDepth, active)

	return &Metrics{
		Registry:            reg,
		InteractionsTotal:   interactions,
		SignatureFailures:   sigFailures,
		ContinuationsTotal:  continuations,
		CatalogDuration:     catalogDuration,
		FollowUpsTotal:      followUps,
		QueueDepth:          queueDepth,
		ContinuationsActive: active,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
