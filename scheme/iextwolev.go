package scheme

import (
	"time"

	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/docset"
	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/token"
)

// iexTwoLevScheme resolves booleans natively. Alongside the single-keyword
// index it precomputes a cross-tag table: the document intersection of every
// unordered keyword pair with non-empty overlap, keyed by a canonical pair
// token. Building the table is O(K²) in distinct keywords and dominates the
// build cost. Two-term conjunctions hit the table directly; wider ones fall
// back to OXT-style s-term filtering.
type iexTwoLevScheme struct {
	base
	opts Options

	single   map[token.Token][]string
	dict     *docset.Dictionary
	postings map[token.Token]*docset.Set
	pairs    map[token.Token]*docset.Set
}

func newIEXTwoLev(opts Options) *iexTwoLevScheme {
	return &iexTwoLevScheme{
		opts:     opts,
		single:   make(map[token.Token][]string),
		dict:     docset.NewDictionary(),
		postings: make(map[token.Token]*docset.Set),
		pairs:    make(map[token.Token]*docset.Set),
	}
}

func (s *iexTwoLevScheme) Name() string { return VariantIEXTwoLev.String() }

func (s *iexTwoLevScheme) Description() string {
	return "Boolean two-level index with precomputed pairwise cross-tags and s-term fallback"
}

func (s *iexTwoLevScheme) SupportsBoolean() bool { return true }
func (s *iexTwoLevScheme) ResponseHiding() bool  { return false }

func (s *iexTwoLevScheme) SearchComplexity() string {
	return "O(r_s + t) where r_s is the smallest term's result set"
}

func (s *iexTwoLevScheme) BuildIndex(ki KeywordIndex) (time.Duration, error) {
	if err := s.ensureSetup(); err != nil {
		return 0, err
	}
	start := time.Now()

	s.resetIndexes()

	keywords := make([]string, 0, len(ki))
	for kw, docs := range ki {
		keywords = append(keywords, kw)
		tok := s.deriver.DeriveToken(kw)
		sorted := uniqueSorted(docs)

		masked := make([]string, len(sorted))
		for i, id := range sorted {
			masked[i] = s.deriver.MaskDocID(id)
		}
		s.single[tok] = masked
		s.postings[tok] = docset.FromDocIDs(s.dict, sorted)
		s.indexSize += entrySize(tok, masked)
	}

	// Cross-tag table over every unordered pair with non-empty overlap.
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

	s.keywordCount = len(ki)
	s.documentCount = ki.DocumentCount()

	return time.Since(start), nil
}

func (s *iexTwoLevScheme) Search(keyword string) ([]string, error) {
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

func (s *iexTwoLevScheme) SearchAnd(keywords []string) ([]string, error) {
	switch len(keywords) {
	case 0:
		return []string{}, nil
	case 1:
		return s.Search(keywords[0])
	}

	// Pair tokens are canonical over the unordered pair, so one lookup
	// covers both argument orders.
	if len(keywords) == 2 && !s.opts.DisablePairTable {
		if overlap, ok := s.pairs[s.deriver.DerivePairToken(keywords[0], keywords[1])]; ok {
			return overlap.DocIDs(s.dict), nil
		}
	}

	return s.sTermIntersect(keywords), nil
}

// sTermIntersect picks the keyword with the smallest posting set and filters
// it against the remaining terms. The choice of s-term only affects cost,
// never the result.
func (s *iexTwoLevScheme) sTermIntersect(keywords []string) []string {
	sets := make([]*docset.Set, len(keywords))
	smallest := 0
	for i, kw := range keywords {
		set, ok := s.postings[s.deriver.DeriveToken(kw)]
		if !ok {
			// A term with no postings empties the conjunction.
			return []string{}
		}
		sets[i] = set
		if set.Len() < sets[smallest].Len() {
			smallest = i
		}
	}

	result := sets[smallest].Clone()
	for i, set := range sets {
		if i == smallest {
			continue
		}
		result.And(set)
	}
	return result.DocIDs(s.dict)
}

func (s *iexTwoLevScheme) SearchOr(keywords []string) ([]string, error) {
	sets := make([]*docset.Set, 0, len(keywords))
	for _, kw := range keywords {
		if set, ok := s.postings[s.deriver.DeriveToken(kw)]; ok {
			sets = append(sets, set)
		}
	}
	return docset.Union(sets...).DocIDs(s.dict), nil
}

func (s *iexTwoLevScheme) LeakageProfile() LeakageProfile {
	return LeakageProfile{
		LeakSearchPattern:       "Revealed",
		LeakAccessPattern:       "Revealed",
		LeakSizePattern:         "Revealed for the smallest term",
		LeakIntersectionPattern: "Revealed - pairwise intersection sizes visible for every conjunction",
		LeakForwardPrivacy:      "No",
		LeakBackwardPrivacy:     "No",
	}
}

func (s *iexTwoLevScheme) resetIndexes() {
	clear(s.single)
	clear(s.postings)
	clear(s.pairs)
	s.dict = docset.NewDictionary()
	s.indexSize = 0
}

func (s *iexTwoLevScheme) Reset() {
	s.resetIndexes()
	s.resetCounters()
}

func (s *iexTwoLevScheme) Close() {
	s.Reset()
	s.closeKey()
}
