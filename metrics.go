package ssebench

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordBuild is called after each index build.
	// scheme is the variant name, duration the build time, err is nil on success.
	RecordBuild(scheme string, duration time.Duration, err error)

	// RecordQuery is called after each measured query execution.
	RecordQuery(scheme string, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(string, time.Duration, error) {}
func (NoopMetricsCollector) RecordQuery(string, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount      atomic.Int64
	BuildErrors     atomic.Int64
	BuildTotalNanos atomic.Int64
	QueryCount      atomic.Int64
	QueryErrors     atomic.Int64
	QueryTotalNanos atomic.Int64
}

func (c *BasicMetricsCollector) RecordBuild(_ string, d time.Duration, err error) {
	c.BuildCount.Add(1)
	c.BuildTotalNanos.Add(int64(d))
	if err != nil {
		c.BuildErrors.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordQuery(_ string, d time.Duration, err error) {
	c.QueryCount.Add(1)
	c.QueryTotalNanos.Add(int64(d))
	if err != nil {
		c.QueryErrors.Add(1)
	}
}

// AvgQueryLatency returns the mean recorded query latency, zero when
// nothing was recorded.
func (c *BasicMetricsCollector) AvgQueryLatency() time.Duration {
	n := c.QueryCount.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(c.QueryTotalNanos.Load() / n)
}
