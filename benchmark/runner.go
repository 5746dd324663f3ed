package benchmark

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/scheme"
)

var (
	// ErrNoSchemes is returned when a run is started without any scheme.
	ErrNoSchemes = errors.New("no schemes configured")

	// ErrNoQueries is returned when a run is started with an empty workload.
	ErrNoQueries = errors.New("no queries configured")
)

const (
	// DefaultWarmupIterations is the default discarded warmup pass count.
	DefaultWarmupIterations = 3

	// DefaultMeasurementIterations is the default recorded pass count.
	DefaultMeasurementIterations = 10

	// DefaultPauseBetweenRuns is the advisory idle pause between scheme
	// runs, giving the runtime a quiet window before the next baseline
	// memory sample. It is not required for correctness.
	DefaultPauseBetweenRuns = 100 * time.Millisecond
)

// Runner executes the benchmark workflow for each scheme: setup, build,
// warmup, then measurement. Everything is strictly sequential - across
// schemes, across phases, and across queries - because overlapping query
// execution would corrupt the wall-clock timings.
type Runner struct {
	warmup      int
	measurement int
	pause       time.Duration
	logger      *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithWarmupIterations sets the discarded warmup pass count. Negative values
// are ignored.
func WithWarmupIterations(n int) RunnerOption {
	return func(r *Runner) {
		if n >= 0 {
			r.warmup = n
		}
	}
}

// WithMeasurementIterations sets the recorded pass count. Negative values
// are ignored.
func WithMeasurementIterations(n int) RunnerOption {
	return func(r *Runner) {
		if n >= 0 {
			r.measurement = n
		}
	}
}

// WithPauseBetweenRuns sets the advisory idle pause between scheme runs.
func WithPauseBetweenRuns(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d >= 0 {
			r.pause = d
		}
	}
}

// WithLogger sets the runner's logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a Runner with the default iteration counts.
func NewRunner(optFns ...RunnerOption) *Runner {
	r := &Runner{
		warmup:      DefaultWarmupIterations,
		measurement: DefaultMeasurementIterations,
		pause:       DefaultPauseBetweenRuns,
		logger:      slog.Default(),
	}
	for _, fn := range optFns {
		fn(r)
	}
	return r
}

// Run benchmarks every scheme against the shared keyword index and workload,
// returning one aggregate per scheme in input order. A scheme that fails
// every query still yields an aggregate with a zero success rate; only
// configuration errors abort the run.
func (r *Runner) Run(schemes []scheme.Scheme, ki scheme.KeywordIndex, queries []Query) ([]*Aggregate, error) {
	if len(schemes) == 0 {
		return nil, ErrNoSchemes
	}
	if len(queries) == 0 {
		return nil, ErrNoQueries
	}

	results := make([]*Aggregate, 0, len(schemes))
	for i, s := range schemes {
		r.logger.Info("benchmarking scheme",
			"scheme", s.Name(),
			"queries", len(queries),
			"warmup", r.warmup,
			"iterations", r.measurement,
		)

		agg, err := r.runScheme(s, ki, queries)
		if err != nil {
			return nil, fmt.Errorf("scheme %s: %w", s.Name(), err)
		}
		results = append(results, agg)

		s.Reset()
		if i < len(schemes)-1 && r.pause > 0 {
			// Advisory pause so the next baseline memory sample is
			// taken in a quiet window.
			runtime.GC()
			time.Sleep(r.pause)
		}
	}
	return results, nil
}

func (r *Runner) runScheme(s scheme.Scheme, ki scheme.KeywordIndex, queries []Query) (*Aggregate, error) {
	agg := NewAggregate(s.Name())
	agg.BaselineMemoryBytes = sampleMemory()

	setupStart := time.Now()
	if _, err := s.Setup(); err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	agg.SetupTime = time.Since(setupStart)

	buildTime, err := s.BuildIndex(ki)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	agg.BuildTime = buildTime
	agg.IndexSizeBytes = s.IndexSizeBytes()
	agg.KeywordCount = s.KeywordCount()
	agg.DocumentCount = s.DocumentCount()
	agg.PeakMemoryBytes = sampleMemory()

	// Warmup passes run the full workload but are discarded.
	for i := 0; i < r.warmup; i++ {
		for _, q := range queries {
			executeQuery(s, q)
		}
	}

	for i := 0; i < r.measurement; i++ {
		for _, q := range queries {
			rec := executeQuery(s, q)
			if !rec.Success {
				r.logger.Debug("query failed",
					"scheme", s.Name(),
					"query", q.ID,
					"error", rec.Err,
				)
			}
			agg.Add(rec)
		}
	}

	agg.Finalize()
	return agg, nil
}

// executeQuery dispatches one query by its declared type and times exactly
// the scheme call. Failures - returned errors or panics inside a scheme -
// are recorded on the result and never abort the workload.
func executeQuery(s scheme.Scheme, q Query) (rec Record) {
	rec = Record{Query: q}

	defer func() {
		if p := recover(); p != nil {
			rec.Success = false
			rec.Err = fmt.Sprintf("panic: %v", p)
		}
	}()

	start := time.Now()
	var (
		docs []string
		err  error
	)
	switch q.Normalized() {
	case QueryAnd:
		docs, err = s.SearchAnd(q.Keywords)
	case QueryOr:
		docs, err = s.SearchOr(q.Keywords)
	default:
		keyword := ""
		if len(q.Keywords) > 0 {
			keyword = q.Keywords[0]
		}
		docs, err = s.Search(keyword)
	}
	rec.Latency = time.Since(start)

	if err != nil {
		rec.Success = false
		rec.Err = err.Error()
		return rec
	}

	rec.Success = true
	rec.Results = docs
	rec.ActualCount = len(docs)
	return rec
}

// sampleMemory returns the current heap allocation. A point-in-time sample
// is sufficient for comparative (not absolute) measurement.
func sampleMemory() uint64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.HeapAlloc
}
