// Package benchmark drives schemes through the measurement workflow and
// aggregates per-query latencies into comparable statistics.
package benchmark

import (
	"fmt"
	"strings"
	"time"
)

// QueryType classifies a query template.
type QueryType string

const (
	// QuerySingle is a single-keyword lookup.
	QuerySingle QueryType = "single"
	// QueryAnd is a conjunction over all keywords.
	QueryAnd QueryType = "AND"
	// QueryOr is a disjunction over all keywords.
	QueryOr QueryType = "OR"
)

// Query is one workload template: what to ask and how many documents the
// plaintext index says should match.
type Query struct {
	ID            string
	Type          QueryType
	Keywords      []string
	ExpectedCount int
}

// Normalized returns the query type with case folded away; unrecognized
// types resolve to QuerySingle.
func (q Query) Normalized() QueryType {
	switch strings.ToUpper(string(q.Type)) {
	case "AND":
		return QueryAnd
	case "OR":
		return QueryOr
	default:
		return QuerySingle
	}
}

// String renders the query for logs, e.g. `Q003: diabetes AND insulin`.
func (q Query) String() string {
	return fmt.Sprintf("%s: %s", q.ID, strings.Join(q.Keywords, " "+string(q.Normalized())+" "))
}

// Record captures one query execution against one scheme.
type Record struct {
	Query

	ActualCount int
	Results     []string
	Latency     time.Duration
	Success     bool
	Err         string
}

// ResultCorrect reports whether the execution returned exactly the expected
// number of documents.
func (r Record) ResultCorrect() bool {
	return r.Success && r.ActualCount == r.ExpectedCount
}

// LatencyMs returns the execution latency in milliseconds.
func (r Record) LatencyMs() float64 {
	return float64(r.Latency.Nanoseconds()) / 1e6
}
