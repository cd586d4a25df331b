package henkan

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; see the
// metrics/prometheus package for a Prometheus implementation.
type MetricsCollector interface {
	// RecordConvert is called after each Candidates call.
	// inputLen is the input length in runes, results the number of
	// candidates returned.
	RecordConvert(inputLen, results int, duration time.Duration)

	// RecordLoad is called after each dictionary load, mandatory or optional.
	// err is nil if successful.
	RecordLoad(name string, duration time.Duration, err error)

	// RecordRelease is called after an optional dictionary is released.
	RecordRelease(name string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordConvert(int, int, time.Duration)     {}
func (NoopMetricsCollector) RecordLoad(string, time.Duration, error) {}
func (NoopMetricsCollector) RecordRelease(string)                    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ConvertCount      atomic.Int64
	ConvertResults    atomic.Int64
	ConvertTotalNanos atomic.Int64
	LoadCount         atomic.Int64
	LoadErrors        atomic.Int64
	LoadTotalNanos    atomic.Int64
	ReleaseCount      atomic.Int64
}

// RecordConvert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordConvert(_ int, results int, duration time.Duration) {
	b.ConvertCount.Add(1)
	b.ConvertResults.Add(int64(results))
	b.ConvertTotalNanos.Add(duration.Nanoseconds())
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(_ string, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelease(string) {
	b.ReleaseCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ConvertCount:    b.ConvertCount.Load(),
		ConvertResults:  b.ConvertResults.Load(),
		ConvertAvgNanos: avg(b.ConvertTotalNanos.Load(), b.ConvertCount.Load()),
		LoadCount:       b.LoadCount.Load(),
		LoadErrors:      b.LoadErrors.Load(),
		LoadAvgNanos:    avg(b.LoadTotalNanos.Load(), b.LoadCount.Load()),
		ReleaseCount:    b.ReleaseCount.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ConvertCount    int64
	ConvertResults  int64
	ConvertAvgNanos int64
	LoadCount       int64
	LoadErrors      int64
	LoadAvgNanos    int64
	ReleaseCount    int64
}
