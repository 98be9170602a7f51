package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors exported by the service
type Metrics struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	predictions    *prometheus.CounterVec
	predictErrors  *prometheus.CounterVec
	predictLatency prometheus.Histogram
	modelLoaded    prometheus.Gauge
}

// New creates a Metrics instance backed by its own registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "verdict",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "verdict",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "verdict",
			Name:      "predictions_total",
			Help:      "Successful predictions by label.",
		}, []string{"label"}),
		predictErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "verdict",
			Name:      "prediction_errors_total",
			Help:      "Failed predictions by reason.",
		}, []string{"reason"}),
		predictLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "verdict",
			Name:      "inference_duration_seconds",
			Help:      "Model forward pass latency.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		modelLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "verdict",
			Name:      "model_loaded",
			Help:      "1 when the tokenizer and model are loaded.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.predictions,
		m.predictErrors,
		m.predictLatency,
		m.modelLoaded,
	)

	return m
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObservePrediction records a successful prediction
func (m *Metrics) ObservePrediction(label string, elapsed time.Duration) {
	m.predictions.WithLabelValues(label).Inc()
	m.predictLatency.Observe(elapsed.Seconds())
}

// ObservePredictionError records a failed prediction
func (m *Metrics) ObservePredictionError(reason string) {
	m.predictErrors.WithLabelValues(reason).Inc()
}

// SetModelLoaded publishes the model load state
func (m *Metrics) SetModelLoaded(loaded bool) {
	if loaded {
		m.modelLoaded.Set(1)
		return
	}
	m.modelLoaded.Set(0)
}
