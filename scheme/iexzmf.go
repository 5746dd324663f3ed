package scheme

import (
	"sort"
	"time"

	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/bloom"
	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/docset"
	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/token"
)

// iexZMFScheme trades the full cross-tag table for compactness. Every keyword
// carries a fixed-size Bloom filter over its documents; conjunctions AND the
// filters and short-circuit to empty when no bit survives, which is sound
// because filters admit no false negatives. Any surviving bits only justify
// the exact intersection over the direct index - Bloom filtering accelerates
// rejection, it never substitutes for exact results. A pairwise table over
// the first PairwiseKeywordCap keywords (lexicographic) keeps the O(K²)
// memory bounded.
type iexZMFScheme struct {
	base
	opts Options

	filters  map[token.Token]*bloom.Filter
	single   map[token.Token][]string
	dict     *docset.Dictionary
	postings map[token.Token]*docset.Set
	pairs    map[token.Token]*docset.Set

	filterBits uint
}

func newIEXZMF(opts Options) *iexZMFScheme {
	return &iexZMFScheme{
		opts:     opts,
		filters:  make(map[token.Token]*bloom.Filter),
		single:   make(map[token.Token][]string),
		dict:     docset.NewDictionary(),
		postings: make(map[token.Token]*docset.Set),
		pairs:    make(map[token.Token]*docset.Set),
	}
}

func (s *iexZMFScheme) Name() string { return VariantIEXZMF.String() }

func (s *iexZMFScheme) Description() string {
	return "Boolean Bloom-filter index: compact conjunction rejection with exact verification"
}

func (s *iexZMFScheme) SupportsBoolean() bool { return true }
func (s *iexZMFScheme) ResponseHiding() bool  { return false }

func (s *iexZMFScheme) SearchComplexity() string {
	return "O(min r_i) with Bloom-filter pre-rejection"
}

func (s *iexZMFScheme) BuildIndex(ki KeywordIndex) (time.Duration, error) {
	if err := s.ensureSetup(); err != nil {
		return 0, err
	}
	start := time.Now()

	s.resetIndexes()

	// All filters share one size so they can be ANDed bit-for-bit. The
	// expected element count is the total posting volume, floored at 100
	// to keep tiny corpora from degenerating the filters.
	totalPostings := 0
	for _, docs := range ki {
		totalPostings += len(docs)
	}
	s.filterBits = bloom.OptimalBits(max(totalPostings, 100), s.opts.FalsePositiveRate)

	for kw, docs := range ki {
		tok := s.deriver.DeriveToken(kw)
		sorted := uniqueSorted(docs)

		filter := bloom.New(s.filterBits, s.opts.BloomHashes)
		masked := make([]string, len(sorted))
		for i, id := range sorted {
			filter.Add(id)
			masked[i] = s.deriver.MaskDocID(id)
		}
		s.filters[tok] = filter
		s.single[tok] = masked
		s.postings[tok] = docset.FromDocIDs(s.dict, sorted)
		s.indexSize += entrySize(tok, masked) + filter.SizeBytes()
	}

	s.buildPairTable(ki)

	s.keywordCount = len(ki)
	s.documentCount = ki.DocumentCount()

	return time.Since(start), nil
}

// buildPairTable precomputes pairwise intersections for the first
// PairwiseKeywordCap keywords in lexicographic order. Pairs outside the cap
// are served by the Bloom-plus-exact fallback.
func (s *iexZMFScheme) buildPairTable(ki KeywordIndex) {
	keywords := ki.Keywords()
	sort.Strings(keywords)
	if limit := s.opts.PairwiseKeywordCap; len(keywords) > limit {
		keywords = keywords[:limit]
	}

	for i := 0; i < len(keywords); i++ {
		left := s.postings[s.deriver.DeriveToken(keywords[i])]
		for j := i + 1; j < len(keywords); j++ {
			right := s.postings[s.deriver.DeriveToken(keywords[j])]
			overlap := docset.Intersect(left, right)
			if overlap.IsEmpty() {
				continue
			}
			pairTok := s.deriver.DerivePairToken(keywords[i], keywords[j])
			s.pairs[pairTok] = overlap
			s.indexSize += uint64(len(pairTok)) + overlap.SizeBytes()
		}
	}
}

func (s *iexZMFScheme) Search(keyword string) ([]string, error) {
	masked, ok := s.single[s.deriver.DeriveToken(keyword)]
	if !ok {
		return []string{}, nil
	}
	results := make([]string, len(masked))
	for i, m := range masked {
		results[i] = token.UnmaskDocID(m)
	}
	return results, nil
}

func (s *iexZMFScheme) SearchAnd(keywords []string) ([]string, error) {
	switch len(keywords) {
	case 0:
		return []string{}, nil
	case 1:
		return s.Search(keywords[0])
	}

	if len(keywords) == 2 && !s.opts.DisablePairTable {
		if overlap, ok := s.pairs[s.deriver.DerivePairToken(keywords[0], keywords[1])]; ok {
			return overlap.DocIDs(s.dict), nil
		}
	}

	// Bloom pre-rejection: AND the per-term filters; an all-zero result
	// proves an empty intersection.
	intersection, ok := s.andFilters(keywords)
	if !ok || intersection.IsEmpty() {
		return []string{}, nil
	}

	// Exact verification over the direct index.
	return s.exactIntersect(keywords), nil
}

// andFilters intersects the per-term Bloom filters. A missing filter means a
// keyword with no postings, which empties the conjunction (ok=false).
func (s *iexZMFScheme) andFilters(keywords []string) (*bloom.Filter, bool) {
	first, ok := s.filters[s.deriver.DeriveToken(keywords[0])]
	if !ok {
		return nil, false
	}
	result := first.Clone()
	for _, kw := range keywords[1:] {
		filter, ok := s.filters[s.deriver.DeriveToken(kw)]
		if !ok || !result.And(filter) {
			return nil, false
		}
	}
	return result, true
}

func (s *iexZMFScheme) exactIntersect(keywords []string) []string {
	sets := make([]*docset.Set, 0, len(keywords))
	for _, kw := range keywords {
		set, ok := s.postings[s.deriver.DeriveToken(kw)]
		if !ok {
			return []string{}
		}
		sets = append(sets, set)
	}
	return docset.Intersect(sets...).DocIDs(s.dict)
}

func (s *iexZMFScheme) SearchOr(keywords []string) ([]string, error) {
	sets := make([]*docset.Set, 0, len(keywords))
	for _, kw := range keywords {
		if set, ok := s.postings[s.deriver.DeriveToken(kw)]; ok {
			sets = append(sets, set)
		}
	}
	return docset.Union(sets...).DocIDs(s.dict), nil
}

func (s *iexZMFScheme) LeakageProfile() LeakageProfile {
	return LeakageProfile{
		LeakSearchPattern:       "Revealed",
		LeakAccessPattern:       "Revealed - approximate membership visible through filter false positives",
		LeakSizePattern:         "Revealed",
		LeakIntersectionPattern: "Revealed for conjunctions at the filtering stage",
		LeakForwardPrivacy:      "No",
		LeakBackwardPrivacy:     "No",
	}
}

func (s *iexZMFScheme) resetIndexes() {
	clear(s.filters)
	clear(s.single)
	clear(s.postings)
	clear(s.pairs)
	s.dict = docset.NewDictionary()
	s.indexSize = 0
	s.filterBits = 0
}

func (s *iexZMFScheme) Reset() {
	s.resetIndexes()
	s.resetCounters()
}

func (s *iexZMFScheme) Close() {
	s.Reset()
	s.closeKey()
}
