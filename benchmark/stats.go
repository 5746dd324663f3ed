package benchmark

import (
	"math"
	"sort"
)

// LatencyStats are the derived statistics over a measurement-phase latency
// sample, in milliseconds.
type LatencyStats struct {
	MinMs    float64 `json:"minMs"`
	MaxMs    float64 `json:"maxMs"`
	MeanMs   float64 `json:"meanMs"`
	StdDevMs float64 `json:"stdDevMs"`
	P50Ms    float64 `json:"p50Ms"`
	P95Ms    float64 `json:"p95Ms"`
	P99Ms    float64 `json:"p99Ms"`

	// QueriesPerSecond is 1000 / mean latency; zero for an empty sample.
	QueriesPerSecond float64 `json:"queriesPerSecond"`
}

// ComputeLatencyStats derives statistics from a latency sample. The standard
// deviation is the population form; percentiles use nearest-rank indexing on
// the ascending-sorted sample.
func ComputeLatencyStats(samplesMs []float64) LatencyStats {
	if len(samplesMs) == 0 {
		return LatencyStats{}
	}

	sorted := make([]float64, len(samplesMs))
	copy(sorted, samplesMs)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))

	var variance float64
	for _, v := range sorted {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(sorted))

	stats := LatencyStats{
		MinMs:    sorted[0],
		MaxMs:    sorted[len(sorted)-1],
		MeanMs:   mean,
		StdDevMs: math.Sqrt(variance),
		P50Ms:    percentile(sorted, 50),
		P95Ms:    percentile(sorted, 95),
		P99Ms:    percentile(sorted, 99),
	}
	if mean > 0 {
		stats.QueriesPerSecond = 1000.0 / mean
	}
	return stats
}

// percentile returns the nearest-rank percentile of an ascending-sorted
// sample: index = clamp(ceil(p/100 * n) - 1, 0, n-1).
func percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(float64(p)/100.0*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx > len(sorted)-1 {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
