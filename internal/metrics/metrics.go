// Package metrics exposes Prometheus metrics for the chat pipeline on a private registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fallback stages.
const (
	StageClassify = "classify"
	StageRetrieve = "retrieve"
	StageGenerate = "generate"
	StageLocalize = "localize"
)

// External calls.
const (
	CallGenerate = "generate"
	CallEmbed    = "embed"
	CallSearch   = "search"
)

// Validation rejection reasons.
const (
	ReasonEmpty   = "empty"
	ReasonTooLong = "too_long"
)

// Metrics holds the domain collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	IntentsTotal         *prometheus.CounterVec
	FallbacksTotal       *prometheus.CounterVec
	ValidationRejections *prometheus.CounterVec
	ExternalCallDuration *prometheus.HistogramVec
	RetrievedChunks      prometheus.Histogram
}

// New creates the domain metrics and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		IntentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medibot",
			Name:      "intents_total",
			Help:      "Effective intent of validated chat messages.",
		}, []string{"intent"}),
		FallbacksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medibot",
			Name:      "fallbacks_total",
			Help:      "External call failures absorbed into a fallback value, by stage.",
		}, []string{"stage"}),
		ValidationRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medibot",
			Name:      "validation_rejections_total",
			Help:      "Messages rejected before any external call, by reason.",
		}, []string{"reason"}),
		ExternalCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "medibot",
			Name:      "external_call_duration_seconds",
			Help:      "Latency of calls to the model and vector index.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"call"}),
		RetrievedChunks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "medibot",
			Name:      "retrieved_chunks",
			Help:      "Number of chunks returned per similarity search.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 10},
		}),
	}

	m.registry.MustRegister(
		m.IntentsTotal,
		m.FallbacksTotal,
		m.ValidationRejections,
		m.ExternalCallDuration,
		m.RetrievedChunks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordIntent(intent string) {
	if m == nil {
		return
	}
	m.IntentsTotal.WithLabelValues(intent).Inc()
}

func (m *Metrics) RecordFallback(stage string) {
	if m == nil {
		return
	}
	m.FallbacksTotal.WithLabelValues(stage).Inc()
}

func (m *Metrics) RecordRejection(reason string) {
	if m == nil {
		return
	}
	m.ValidationRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveCall(call string, d time.Duration) {
	if m == nil {
		return
	}
	m.ExternalCallDuration.WithLabelValues(call).Observe(d.Seconds())
}

func (m *Metrics) ObserveRetrieved(n int) {
	if m == nil {
		return
	}
	m.RetrievedChunks.Observe(float64(n))
}
