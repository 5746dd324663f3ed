// Package ssebench benchmarks searchable symmetric encryption (SSE)
// schemes over a shared keyword index and grades their leakage
// profiles.
//
// Five scheme variants are provided:
//
//   - Linear: per-keyword token map, the exactness baseline
//   - 2Lev-RR: two-level bucketed index, response-revealing
//   - 2Lev-RH: two-level bucketed index, response-hiding (padded)
//   - IEX-2Lev: boolean queries via precomputed pairwise cross-tags
//   - IEX-ZMF: boolean queries via per-keyword Bloom filters
//
// # Quick Start
//
//	ki, err := dataset.Load("dataset.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	suite, err := ssebench.New(ki,
//	    ssebench.WithSchemes("Linear", "IEX-2Lev"),
//	    ssebench.WithMeasurementIterations(10),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := suite.Run()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Results carry per-scheme latency statistics (mean, p50/p95/p99,
// throughput), index and memory sizes, per-query records, and a
// leakage report scoring eight fixed pattern categories.
//
// All schemes run in memory against the same keyword index, so the
// measured differences reflect scheme structure rather than I/O.
package ssebench
