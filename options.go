package ssebench

import (
	"time"

	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/benchmark"
	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/scheme"
)

type options struct {
	schemeNames      []string
	schemeOptions    []func(*scheme.Options)
	queries          []benchmark.Query
	numSingle        int
	numAnd           int
	numOr            int
	seed             int64
	runnerOptions    []benchmark.RunnerOption
	securityAnalysis bool
	logger           *Logger
	metricsCollector MetricsCollector
	runID            string
}

// Option configures Suite behavior.
type Option func(*options)

// WithSchemes selects the scheme variants to benchmark by name
// (case-insensitive, e.g. "Linear", "2Lev-RH", "iex-zmf"). The
// default is every variant.
func WithSchemes(names ...string) Option {
	return func(o *options) {
		o.schemeNames = names
	}
}

// WithSchemeOptions passes construction parameters (packing parameter,
// big-block threshold, Bloom false-positive rate, ...) to every scheme.
func WithSchemeOptions(optFns ...func(*scheme.Options)) Option {
	return func(o *options) {
		o.schemeOptions = optFns
	}
}

// WithQueries supplies an explicit query workload instead of the
// generated one.
func WithQueries(queries []benchmark.Query) Option {
	return func(o *options) {
		o.queries = queries
	}
}

// WithQueryMix sets the generated workload composition: single-keyword,
// conjunctive and disjunctive query counts.
func WithQueryMix(single, and, or int) Option {
	return func(o *options) {
		o.numSingle = single
		o.numAnd = and
		o.numOr = or
	}
}

// WithSeed sets the query-generation seed so workloads are
// reproducible across runs.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithWarmupIterations sets how many discarded warmup passes each
// scheme runs over the workload.
func WithWarmupIterations(n int) Option {
	return func(o *options) {
		o.runnerOptions = append(o.runnerOptions, benchmark.WithWarmupIterations(n))
	}
}

// WithMeasurementIterations sets how many recorded passes each scheme
// runs over the workload.
func WithMeasurementIterations(n int) Option {
	return func(o *options) {
		o.runnerOptions = append(o.runnerOptions, benchmark.WithMeasurementIterations(n))
	}
}

// WithPauseBetweenRuns sets the settle pause after each scheme's run.
func WithPauseBetweenRuns(d time.Duration) Option {
	return func(o *options) {
		o.runnerOptions = append(o.runnerOptions, benchmark.WithPauseBetweenRuns(d))
	}
}

// WithSecurityAnalysis toggles leakage analysis of the benchmarked
// schemes. Enabled by default.
func WithSecurityAnalysis(enabled bool) Option {
	return func(o *options) {
		o.securityAnalysis = enabled
	}
}

// WithLogger configures the logger. If nil is passed, logging is
// disabled.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithMetricsCollector configures operational metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithRunID tags the results with an externally chosen run identifier.
func WithRunID(id string) Option {
	return func(o *options) {
		o.runID = id
	}
}
