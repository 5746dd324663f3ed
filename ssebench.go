package ssebench

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/benchmark"
	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/export"
	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/leakage"
	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/scheme"
)

const (
	defaultNumSingle = 10
	defaultNumAnd    = 5
	defaultNumOr     = 5
	defaultSeed      = 42
)

// Suite runs the full benchmark pipeline over one keyword index:
// scheme construction, measured query execution and leakage analysis.
type Suite struct {
	index   scheme.KeywordIndex
	opts    options
	schemes []scheme.Scheme
	skipped []string
}

// New creates a Suite over the given keyword index. Requested scheme
// names that match no variant are logged and skipped rather than
// failing the whole run; New fails only when nothing usable remains.
func New(index scheme.KeywordIndex, optFns ...Option) (*Suite, error) {
	if len(index) == 0 {
		return nil, ErrEmptyIndex
	}

	opts := options{
		schemeNames:      scheme.VariantNames(),
		numSingle:        defaultNumSingle,
		numAnd:           defaultNumAnd,
		numOr:            defaultNumOr,
		seed:             defaultSeed,
		securityAnalysis: true,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.runID == "" {
		opts.runID = uuid.NewString()
	}

	s := &Suite{index: index, opts: opts}

	for _, name := range opts.schemeNames {
		sch, err := scheme.NewByName(name, opts.schemeOptions...)
		if err != nil {
			opts.logger.Warn("skipping scheme", "scheme", name, "error", translateError(err))
			s.skipped = append(s.skipped, name)
			continue
		}
		s.schemes = append(s.schemes, sch)
	}

	if len(s.schemes) == 0 {
		return nil, ErrNoUsableSchemes
	}

	return s, nil
}

// Schemes returns the constructed scheme names in run order.
func (s *Suite) Schemes() []string {
	names := make([]string, len(s.schemes))
	for i, sch := range s.schemes {
		names[i] = sch.Name()
	}
	return names
}

// Skipped returns the requested scheme names that could not be
// constructed.
func (s *Suite) Skipped() []string { return s.skipped }

// RunID returns the identifier the results will be tagged with.
func (s *Suite) RunID() string { return s.opts.runID }

// Run executes the benchmark and, when enabled, the leakage analysis.
// Every constructed scheme is closed before Run returns.
func (s *Suite) Run() (*export.Results, error) {
	defer func() {
		for _, sch := range s.schemes {
			sch.Close()
		}
	}()

	logger := s.opts.logger.WithRun(s.opts.runID)

	queries := s.opts.queries
	if len(queries) == 0 {
		gen := benchmark.NewGenerator(s.index, s.opts.seed)
		queries = gen.Generate(s.opts.numSingle, s.opts.numAnd, s.opts.numOr)
	}

	logger.Info("starting benchmark",
		"schemes", len(s.schemes),
		"keywords", len(s.index),
		"documents", s.index.DocumentCount(),
		"queries", len(queries),
	)

	runner := benchmark.NewRunner(append(
		[]benchmark.RunnerOption{benchmark.WithLogger(logger.Logger)},
		s.opts.runnerOptions...,
	)...)

	aggregates, err := runner.Run(s.schemes, s.index, queries)
	if err != nil {
		return nil, translateError(err)
	}

	results := &export.Results{
		RunID:     s.opts.runID,
		Timestamp: time.Now().UTC(),
	}
	for _, agg := range aggregates {
		s.recordMetrics(agg)
		results.Benchmarks = append(results.Benchmarks, *agg)
	}

	if s.opts.securityAnalysis {
		profiles := make([]leakage.SchemeProfile, 0, len(s.schemes))
		for _, sch := range s.schemes {
			profiles = append(profiles, leakage.SchemeProfile{
				Name:    sch.Name(),
				Profile: sch.LeakageProfile(),
			})
		}
		results.Security = leakage.Analyzer{}.AnalyzeAll(profiles)
	}

	logger.Info("benchmark complete", "schemes", len(results.Benchmarks))

	return results, nil
}

func (s *Suite) recordMetrics(agg *benchmark.Aggregate) {
	s.opts.metricsCollector.RecordBuild(agg.SchemeName, agg.BuildTime, nil)
	for _, rec := range agg.Records {
		var err error
		if !rec.Success {
			err = errors.New(rec.Err)
		}
		s.opts.metricsCollector.RecordQuery(agg.SchemeName, rec.Latency, err)
	}
}
