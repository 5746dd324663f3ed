package benchmark

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sort"

	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/docset"
	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/scheme"
)

// Generator builds query workloads from the plaintext keyword index so every
// template carries an exact expected result count.
type Generator struct {
	ki  scheme.KeywordIndex
	rng *rand.Rand

	// byFrequency caches the vocabulary sorted ascending by posting count.
	byFrequency []string
}

// NewGenerator creates a seeded generator; the same seed over the same index
// yields the same workload.
func NewGenerator(ki scheme.KeywordIndex, seed int64) *Generator {
	keywords := ki.Keywords()
	sort.Slice(keywords, func(i, j int) bool {
		if len(ki[keywords[i]]) != len(ki[keywords[j]]) {
			return len(ki[keywords[i]]) < len(ki[keywords[j]])
		}
		return keywords[i] < keywords[j]
	})
	return &Generator{
		ki:          ki,
		rng:         rand.New(rand.NewSource(seed)),
		byFrequency: keywords,
	}
}

// Generate produces a mixed workload: numSingle single-keyword queries drawn
// across rare/medium/common selectivity bands, plus numAnd conjunctions and
// numOr disjunctions of 2-3 random keywords each.
func (g *Generator) Generate(numSingle, numAnd, numOr int) []Query {
	queries := make([]Query, 0, numSingle+numAnd+numOr)
	queries = append(queries, g.singles(numSingle)...)
	queries = append(queries, g.booleans(QueryAnd, numAnd)...)
	queries = append(queries, g.booleans(QueryOr, numOr)...)
	for i := range queries {
		queries[i].ID = fmt.Sprintf("Q%03d", i)
	}
	return queries
}

// singles draws keywords in thirds from the frequency-sorted vocabulary so
// the workload spans selectivities.
func (g *Generator) singles(count int) []Query {
	n := len(g.byFrequency)
	if n == 0 || count <= 0 {
		return nil
	}

	bands := [3][2]int{
		{0, n / 3},         // rare
		{n / 3, 2 * n / 3}, // medium
		{2 * n / 3, n},     // common
	}

	queries := make([]Query, 0, count)
	for i := 0; i < count; i++ {
		band := bands[i%3]
		if band[1] <= band[0] {
			band = [2]int{0, n}
		}
		kw := g.byFrequency[band[0]+g.rng.Intn(band[1]-band[0])]
		queries = append(queries, Query{
			Type:          QuerySingle,
			Keywords:      []string{kw},
			ExpectedCount: g.distinctCount(kw),
		})
	}
	return queries
}

func (g *Generator) booleans(qt QueryType, count int) []Query {
	n := len(g.byFrequency)
	if n < 2 || count <= 0 {
		return nil
	}

	queries := make([]Query, 0, count)
	for i := 0; i < count; i++ {
		picks := 2 + g.rng.Intn(2)
		if picks > n {
			picks = n
		}
		keywords := g.sample(picks)

		var expected int
		if qt == QueryAnd {
			expected = g.expectedAnd(keywords)
		} else {
			expected = g.expectedOr(keywords)
		}
		queries = append(queries, Query{
			Type:          qt,
			Keywords:      keywords,
			ExpectedCount: expected,
		})
	}
	return queries
}

// sample picks k distinct keywords uniformly.
func (g *Generator) sample(k int) []string {
	idx := g.rng.Perm(len(g.byFrequency))[:k]
	out := make([]string, k)
	for i, j := range idx {
		out[i] = g.byFrequency[j]
	}
	return out
}

func (g *Generator) distinctCount(keyword string) int {
	dict := docset.NewDictionary()
	return docset.FromDocIDs(dict, g.ki[keyword]).Len()
}

func (g *Generator) expectedAnd(keywords []string) int {
	dict := docset.NewDictionary()
	sets := make([]*docset.Set, len(keywords))
	for i, kw := range keywords {
		sets[i] = docset.FromDocIDs(dict, g.ki[kw])
	}
	return docset.Intersect(sets...).Len()
}

func (g *Generator) expectedOr(keywords []string) int {
	dict := docset.NewDictionary()
	sets := make([]*docset.Set, len(keywords))
	for i, kw := range keywords {
		sets[i] = docset.FromDocIDs(dict, g.ki[kw])
	}
	return docset.Union(sets...).Len()
}

// queryFile is the JSON wire form of one workload entry.
type queryFile struct {
	Type            string   `json:"type"`
	Keywords        []string `json:"keywords"`
	ExpectedResults int      `json:"expectedResults"`
}

// LoadQueries reads a pre-generated workload from a JSON file: an array of
// {type, keywords, expectedResults} objects. IDs are assigned by position.
func LoadQueries(path string) ([]Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read queries: %w", err)
	}

	var raw []queryFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse queries %s: %w", path, err)
	}

	queries := make([]Query, 0, len(raw))
	for i, q := range raw {
		if len(q.Keywords) == 0 {
			return nil, fmt.Errorf("query %d in %s has no keywords", i, path)
		}
		queries = append(queries, Query{
			ID:            fmt.Sprintf("Q%03d", i),
			Type:          QueryType(q.Type),
			Keywords:      q.Keywords,
			ExpectedCount: q.ExpectedResults,
		})
	}
	return queries, nil
}
