package benchmark

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/scheme"
)

func testIndex() scheme.KeywordIndex {
	return scheme.KeywordIndex{
		"diabetes": {"doc1", "doc2", "doc3"},
		"insulin":  {"doc1", "doc3"},
		"flu":      {"doc5"},
	}
}

func testQueries() []Query {
	return []Query{
		{ID: "Q000", Type: QuerySingle, Keywords: []string{"diabetes"}, ExpectedCount: 3},
		{ID: "Q001", Type: QueryAnd, Keywords: []string{"diabetes", "insulin"}, ExpectedCount: 2},
		{ID: "Q002", Type: QueryOr, Keywords: []string{"insulin", "flu"}, ExpectedCount: 3},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.Level(1000)}))
}

func TestRunnerRun(t *testing.T) {
	t.Run("guards", func(t *testing.T) {
		r := NewRunner(WithLogger(quietLogger()))

		_, err := r.Run(nil, testIndex(), testQueries())
		require.ErrorIs(t, err, ErrNoSchemes)

		_, err = r.Run([]scheme.Scheme{scheme.New(scheme.VariantLinear)}, testIndex(), nil)
		require.ErrorIs(t, err, ErrNoQueries)
	})

	t.Run("records expected iteration counts", func(t *testing.T) {
		s := scheme.New(scheme.VariantLinear)
		defer s.Close()

		r := NewRunner(
			WithLogger(quietLogger()),
			WithWarmupIterations(2),
			WithMeasurementIterations(3),
			WithPauseBetweenRuns(0),
		)

		aggs, err := r.Run([]scheme.Scheme{s}, testIndex(), testQueries())
		require.NoError(t, err)
		require.Len(t, aggs, 1)

		agg := aggs[0]
		assert.Equal(t, "Linear", agg.SchemeName)
		// 3 measurement passes over 3 queries; warmup is discarded.
		assert.Equal(t, 9, agg.TotalQueries)
		assert.Equal(t, 9, agg.SuccessfulQueries)
		assert.Zero(t, agg.FailedQueries)
		assert.Positive(t, agg.IndexSizeBytes)
		assert.Equal(t, 3, agg.KeywordCount)
		assert.Equal(t, float64(100), agg.SuccessRate())
	})

	t.Run("all schemes measured in order", func(t *testing.T) {
		schemes := []scheme.Scheme{
			scheme.New(scheme.VariantLinear),
			scheme.New(scheme.VariantIEXTwoLev),
		}
		defer func() {
			for _, s := range schemes {
				s.Close()
			}
		}()

		r := NewRunner(
			WithLogger(quietLogger()),
			WithWarmupIterations(0),
			WithMeasurementIterations(1),
			WithPauseBetweenRuns(time.Millisecond),
		)

		aggs, err := r.Run(schemes, testIndex(), testQueries())
		require.NoError(t, err)
		require.Len(t, aggs, 2)
		assert.Equal(t, "Linear", aggs[0].SchemeName)
		assert.Equal(t, "IEX-2Lev", aggs[1].SchemeName)

		for _, agg := range aggs {
			for _, rec := range agg.Records {
				assert.True(t, rec.ResultCorrect(), "%s %s", agg.SchemeName, rec.ID)
			}
		}
	})
}

// faultyScheme fails or panics on demand to exercise failure capture.
type faultyScheme struct {
	scheme.Scheme
	failKeyword  string
	panicKeyword string
}

func (f *faultyScheme) Search(keyword string) ([]string, error) {
	switch keyword {
	case f.failKeyword:
		return nil, errors.New("simulated failure")
	case f.panicKeyword:
		panic("simulated panic")
	}
	return f.Scheme.Search(keyword)
}

func TestExecuteQueryFailureCapture(t *testing.T) {
	inner := scheme.New(scheme.VariantLinear)
	defer inner.Close()
	_, err := inner.BuildIndex(testIndex())
	require.NoError(t, err)

	s := &faultyScheme{Scheme: inner, failKeyword: "bad", panicKeyword: "boom"}

	t.Run("error recorded", func(t *testing.T) {
		rec := executeQuery(s, Query{ID: "Q1", Type: QuerySingle, Keywords: []string{"bad"}})
		assert.False(t, rec.Success)
		assert.Equal(t, "simulated failure", rec.Err)
	})

	t.Run("panic recovered", func(t *testing.T) {
		rec := executeQuery(s, Query{ID: "Q2", Type: QuerySingle, Keywords: []string{"boom"}})
		assert.False(t, rec.Success)
		assert.Contains(t, rec.Err, "panic: simulated panic")
	})

	t.Run("healthy query unaffected", func(t *testing.T) {
		rec := executeQuery(s, Query{ID: "Q3", Type: QuerySingle, Keywords: []string{"diabetes"}})
		assert.True(t, rec.Success)
		assert.Equal(t, 3, rec.ActualCount)
	})

	t.Run("failures never abort the run", func(t *testing.T) {
		r := NewRunner(
			WithLogger(quietLogger()),
			WithWarmupIterations(0),
			WithMeasurementIterations(1),
			WithPauseBetweenRuns(0),
		)

		queries := []Query{
			{ID: "Q0", Type: QuerySingle, Keywords: []string{"diabetes"}, ExpectedCount: 3},
			{ID: "Q1", Type: QuerySingle, Keywords: []string{"boom"}},
		}
		aggs, err := r.Run([]scheme.Scheme{s}, testIndex(), queries)
		require.NoError(t, err)
		assert.Equal(t, 1, aggs[0].SuccessfulQueries)
		assert.Equal(t, 1, aggs[0].FailedQueries)
	})
}

func TestExecuteQueryDispatch(t *testing.T) {
	s := scheme.New(scheme.VariantIEXZMF)
	defer s.Close()
	_, err := s.BuildIndex(testIndex())
	require.NoError(t, err)

	t.Run("and", func(t *testing.T) {
		rec := executeQuery(s, Query{Type: QueryAnd, Keywords: []string{"diabetes", "insulin"}})
		assert.Equal(t, 2, rec.ActualCount)
	})

	t.Run("or", func(t *testing.T) {
		rec := executeQuery(s, Query{Type: QueryOr, Keywords: []string{"insulin", "flu"}})
		assert.Equal(t, 3, rec.ActualCount)
	})

	t.Run("unknown type treated as single", func(t *testing.T) {
		rec := executeQuery(s, Query{Type: "weird", Keywords: []string{"flu"}})
		assert.Equal(t, 1, rec.ActualCount)
	})

	t.Run("empty keywords single search", func(t *testing.T) {
		rec := executeQuery(s, Query{Type: QuerySingle})
		assert.True(t, rec.Success)
		assert.Zero(t, rec.ActualCount)
	})
}

func TestAggregate(t *testing.T) {
	agg := NewAggregate("Linear")
	agg.Add(Record{Success: true, Latency: 2 * time.Millisecond})
	agg.Add(Record{Success: false, Err: "boom"})
	agg.Finalize()

	assert.Equal(t, 2, agg.TotalQueries)
	assert.Equal(t, 1, agg.SuccessfulQueries)
	assert.Equal(t, 1, agg.FailedQueries)
	assert.Equal(t, 50.0, agg.SuccessRate())
	// Failed executions are excluded from latency statistics.
	assert.Equal(t, 2.0, agg.Latency.MeanMs)

	agg.BaselineMemoryBytes = 100
	agg.PeakMemoryBytes = 60
	assert.Zero(t, agg.MemoryUsedBytes())
	agg.PeakMemoryBytes = 160
	assert.Equal(t, uint64(60), agg.MemoryUsedBytes())
}
