package cardcycle

import "time"

// Metrics defines the interface for tracking calculator operations.
type Metrics interface {
	// RecordCalculation records one period or posting computation.
	// op is "period" or "posting"; fallback reports whether the
	// approximate fallback algorithm produced the result.
	RecordCalculation(op string, duration time.Duration, fallback bool)

	// RecordCacheHit records a cache hit for a result kind ("period",
	// "posting").
	RecordCacheHit(kind string)

	// RecordCacheMiss records a cache miss for a result kind.
	RecordCacheMiss(kind string)

	// RecordFallback records that a fallback path produced a result.
	RecordFallback(op string)
}

// NoopMetrics is a no-op implementation of the Metrics interface.
type NoopMetrics struct{}

func (n *NoopMetrics) RecordCalculation(op string, duration time.Duration, fallback bool) {}
func (n *NoopMetrics) RecordCacheHit(kind string)                                         {}
func (n *NoopMetrics) RecordCacheMiss(kind string)                                        {}
func (n *NoopMetrics) RecordFallback(op string)                                           {}
