package benchmark

import "time"

// Aggregate collects one scheme's complete benchmark outcome: build-phase
// timings and sizes, the measurement-phase records, and the derived latency
// statistics. It is a plain value object; exporters and reporters treat it as
// opaque and serializable.
type Aggregate struct {
	SchemeName string `json:"schemeName"`

	SetupTime time.Duration `json:"setupTimeNs"`
	BuildTime time.Duration `json:"buildTimeNs"`

	IndexSizeBytes      uint64 `json:"indexSizeBytes"`
	BaselineMemoryBytes uint64 `json:"baselineMemoryBytes"`
	PeakMemoryBytes     uint64 `json:"peakMemoryBytes"`

	KeywordCount  int `json:"keywordCount"`
	DocumentCount int `json:"documentCount"`

	Records []Record `json:"records"`

	TotalQueries      int `json:"totalQueries"`
	SuccessfulQueries int `json:"successfulQueries"`
	FailedQueries     int `json:"failedQueries"`

	Latency LatencyStats `json:"latency"`
}

// NewAggregate creates an empty aggregate for a scheme.
func NewAggregate(schemeName string) *Aggregate {
	return &Aggregate{SchemeName: schemeName}
}

// Add records one measurement-phase execution.
func (a *Aggregate) Add(rec Record) {
	a.Records = append(a.Records, rec)
	a.TotalQueries++
	if rec.Success {
		a.SuccessfulQueries++
	} else {
		a.FailedQueries++
	}
}

// Finalize computes the latency statistics over the recorded sample.
// Failed executions contribute to counts but not to latency statistics.
func (a *Aggregate) Finalize() {
	samples := make([]float64, 0, len(a.Records))
	for _, rec := range a.Records {
		if rec.Success {
			samples = append(samples, rec.LatencyMs())
		}
	}
	a.Latency = ComputeLatencyStats(samples)
}

// SuccessRate returns the percentage of successful executions, zero when
// nothing ran.
func (a *Aggregate) SuccessRate() float64 {
	if a.TotalQueries == 0 {
		return 0
	}
	return float64(a.SuccessfulQueries) / float64(a.TotalQueries) * 100
}

// MemoryUsedBytes returns the peak-over-baseline memory delta, clamped at
// zero because the samples are point-in-time and the runtime may shrink
// between them.
func (a *Aggregate) MemoryUsedBytes() uint64 {
	if a.PeakMemoryBytes < a.BaselineMemoryBytes {
		return 0
	}
	return a.PeakMemoryBytes - a.BaselineMemoryBytes
}
