package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels recorded for document operations.
const (
	OutcomeOK      = "ok"
	OutcomeMissing = "missing"
	OutcomeQuota   = "quota_exceeded"
	OutcomeError   = "error"
)

// DocumentMetrics records document store traffic per storage key.
type DocumentMetrics struct {
	duration  *prometheus.HistogramVec
	ops       *prometheus.CounterVec
	size      *prometheus.GaugeVec
	published *prometheus.CounterVec
}

// NewDocumentMetrics registers the document store metrics on the provided registerer.
func NewDocumentMetrics(reg prometheus.Registerer) *DocumentMetrics {
	if reg == nil {
		return &DocumentMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "docstore_operation_duration_seconds",
		Help:    "Duration of document store operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op", "key"})
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "docstore_operations_total",
		Help: "Document store operations by outcome.",
	}, []string{"op", "key", "outcome"})
	size := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "docstore_document_bytes",
		Help: "Size of the last document written per key.",
	}, []string{"key"})
	published := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "docstore_changes_published_total",
		Help: "Document change notifications published.",
	}, []string{"key"})
	reg.MustRegister(duration, ops, size, published)
	return &DocumentMetrics{
		duration:  duration,
		ops:       ops,
		size:      size,
		published: published,
	}
}

// Observe records one operation against key.
func (m *DocumentMetrics) Observe(op, key, outcome string, took time.Duration) {
	if m == nil || m.ops == nil {
		return
	}
	key = normalizeLabel(key)
	m.duration.WithLabelValues(op, key).Observe(took.Seconds())
	m.ops.WithLabelValues(op, key, outcome).Inc()
}

// SetSize records the byte size of the document stored under key.
func (m *DocumentMetrics) SetSize(key string, bytes int) {
	if m == nil || m.size == nil {
		return
	}
	m.size.WithLabelValues(normalizeLabel(key)).Set(float64(bytes))
}

// IncPublished counts a change notification for key.
func (m *DocumentMetrics) IncPublished(key string) {
	if m == nil || m.published == nil {
		return
	}
	m.published.WithLabelValues(normalizeLabel(key)).Inc()
}

func normalizeLabel(key string) string {
	if key == "" {
		return "unknown"
	}
	return key
}
