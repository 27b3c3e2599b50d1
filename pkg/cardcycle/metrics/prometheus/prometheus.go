package prommetrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics implements cardcycle.Metrics using Prometheus.
type Metrics struct {
	calculationsTotal   *prometheus.CounterVec
	calculationDuration *prometheus.HistogramVec
	cacheHitsTotal      *prometheus.CounterVec
	cacheMissesTotal    *prometheus.CounterVec
	fallbacksTotal      *prometheus.CounterVec
}

// NewMetrics creates a new Prometheus metrics implementation.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		calculationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "billing_calculations_total",
			Help:      "Total number of period and posting calculations.",
		}, []string{"op", "fallback"}),

		calculationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "billing_calculation_duration_seconds",
			Help:      "Latency of period and posting calculations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),

		cacheHitsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of cache hits.",
		}, []string{"kind"}),

		cacheMissesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of cache misses.",
		}, []string{"kind"}),

		fallbacksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "billing_fallbacks_total",
			Help:      "Total number of results produced by a fallback algorithm.",
		}, []string{"op"}),
	}
}

func (m *Metrics) RecordCalculation(op string, duration time.Duration, fallback bool) {
	m.calculationsTotal.WithLabelValues(op, strconv.FormatBool(fallback)).Inc()
	m.calculationDuration.WithLabelValues(op).Observe(duration.Seconds())
}

func (m *Metrics) RecordCacheHit(kind string) {
	m.cacheHitsTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordCacheMiss(kind string) {
	m.cacheMissesTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordFallback(op string) {
	m.fallbacksTotal.WithLabelValues(op).Inc()
}

// DefaultMetrics returns a Metrics implementation using the default
// Prometheus registerer.
func DefaultMetrics(namespace string) *Metrics {
	return NewMetrics(prometheus.DefaultRegisterer, namespace)
}
