package ssebench

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/benchmark"
	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/scheme"
)

func testIndex() scheme.KeywordIndex {
	return scheme.KeywordIndex{
		"diabetes":     {"doc1", "doc2", "doc3"},
		"insulin":      {"doc1", "doc3"},
		"hypertension": {"doc2", "doc4"},
		"flu":          {"doc5"},
	}
}

func TestNew(t *testing.T) {
	t.Run("defaults to all variants", func(t *testing.T) {
		suite, err := New(testIndex())
		require.NoError(t, err)
		assert.Len(t, suite.Schemes(), 5)
		assert.Empty(t, suite.Skipped())
		assert.NotEmpty(t, suite.RunID())
	})

	t.Run("empty index rejected", func(t *testing.T) {
		_, err := New(scheme.KeywordIndex{})
		require.ErrorIs(t, err, ErrEmptyIndex)
	})

	t.Run("unknown scheme skipped", func(t *testing.T) {
		suite, err := New(testIndex(), WithSchemes("Linear", "bogus"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Linear"}, suite.Schemes())
		assert.Equal(t, []string{"bogus"}, suite.Skipped())
	})

	t.Run("all schemes unknown fails", func(t *testing.T) {
		_, err := New(testIndex(), WithSchemes("bogus", "worse"))
		require.ErrorIs(t, err, ErrNoUsableSchemes)
	})
}

func TestSuiteRun(t *testing.T) {
	t.Run("end to end", func(t *testing.T) {
		suite, err := New(testIndex(),
			WithSchemes("Linear", "IEX-2Lev"),
			WithWarmupIterations(1),
			WithMeasurementIterations(2),
			WithPauseBetweenRuns(0),
			WithQueryMix(2, 1, 1),
			WithRunID("run-1"),
		)
		require.NoError(t, err)

		results, err := suite.Run()
		require.NoError(t, err)
		assert.Equal(t, "run-1", results.RunID)
		require.Len(t, results.Benchmarks, 2)
		require.Len(t, results.Security, 2)

		for _, agg := range results.Benchmarks {
			assert.Equal(t, agg.TotalQueries, agg.SuccessfulQueries)
			assert.Equal(t, 4, agg.KeywordCount)
			assert.Positive(t, agg.IndexSizeBytes)
		}
	})

	t.Run("explicit queries and exact counts", func(t *testing.T) {
		queries := []benchmark.Query{
			{ID: "Q001", Type: benchmark.QuerySingle, Keywords: []string{"diabetes"}, ExpectedCount: 3},
			{ID: "Q002", Type: benchmark.QueryAnd, Keywords: []string{"diabetes", "insulin"}, ExpectedCount: 2},
			{ID: "Q003", Type: benchmark.QueryOr, Keywords: []string{"insulin", "flu"}, ExpectedCount: 3},
		}

		suite, err := New(testIndex(),
			WithSchemes("IEX-ZMF"),
			WithQueries(queries),
			WithWarmupIterations(0),
			WithMeasurementIterations(1),
			WithPauseBetweenRuns(0),
		)
		require.NoError(t, err)

		results, err := suite.Run()
		require.NoError(t, err)
		require.Len(t, results.Benchmarks, 1)

		for _, rec := range results.Benchmarks[0].Records {
			require.True(t, rec.Success, "query %s failed: %s", rec.ID, rec.Err)
			assert.True(t, rec.ResultCorrect(), "query %s returned %d documents", rec.ID, rec.ActualCount)
		}
	})

	t.Run("security analysis disabled", func(t *testing.T) {
		suite, err := New(testIndex(),
			WithSchemes("Linear"),
			WithSecurityAnalysis(false),
			WithWarmupIterations(0),
			WithMeasurementIterations(1),
			WithPauseBetweenRuns(0),
		)
		require.NoError(t, err)

		results, err := suite.Run()
		require.NoError(t, err)
		assert.Empty(t, results.Security)
	})

	t.Run("metrics collector observes the run", func(t *testing.T) {
		var mc BasicMetricsCollector
		suite, err := New(testIndex(),
			WithSchemes("Linear"),
			WithQueryMix(2, 0, 0),
			WithWarmupIterations(0),
			WithMeasurementIterations(1),
			WithPauseBetweenRuns(0),
			WithMetricsCollector(&mc),
		)
		require.NoError(t, err)

		_, err = suite.Run()
		require.NoError(t, err)
		assert.Equal(t, int64(1), mc.BuildCount.Load())
		assert.Equal(t, int64(2), mc.QueryCount.Load())
		assert.Zero(t, mc.QueryErrors.Load())
	})
}

func TestTranslateError(t *testing.T) {
	t.Run("unknown variant", func(t *testing.T) {
		err := translateError(&scheme.ErrUnknownVariant{Name: "bogus"})
		var us *ErrUnknownScheme
		require.ErrorAs(t, err, &us)
		assert.Equal(t, "bogus", us.Name)
	})

	t.Run("no schemes sentinel", func(t *testing.T) {
		err := translateError(benchmark.ErrNoSchemes)
		assert.ErrorIs(t, err, ErrNoUsableSchemes)
	})

	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, translateError(nil))
	})

	t.Run("unrelated error unchanged", func(t *testing.T) {
		cause := errors.New("boom")
		assert.ErrorIs(t, translateError(cause), cause)
	})
}

func TestBasicMetricsCollector(t *testing.T) {
	var mc BasicMetricsCollector
	mc.RecordQuery("Linear", 2*time.Millisecond, nil)
	mc.RecordQuery("Linear", 4*time.Millisecond, errors.New("boom"))

	assert.Equal(t, int64(2), mc.QueryCount.Load())
	assert.Equal(t, int64(1), mc.QueryErrors.Load())
	assert.Equal(t, 3*time.Millisecond, mc.AvgQueryLatency())
}
