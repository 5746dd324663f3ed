package scheme

import (
	"time"

	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/docset"
	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/token"
)

// linearScheme is the single-level baseline: a flat map from keyword token to
// masked document IDs. Search cost is linear in the result size; booleans are
// client-side combinations of single searches.
type linearScheme struct {
	base
	opts  Options
	index map[token.Token][]string
}

func newLinear(opts Options) *linearScheme {
	return &linearScheme{
		opts:  opts,
		index: make(map[token.Token][]string),
	}
}

func (s *linearScheme) Name() string { return VariantLinear.String() }

func (s *linearScheme) Description() string {
	return "Single-level baseline: token-keyed posting lists, O(r) search, client-side booleans"
}

func (s *linearScheme) SupportsBoolean() bool { return false }
func (s *linearScheme) ResponseHiding() bool  { return false }

func (s *linearScheme) SearchComplexity() string { return "O(r) in result size" }

func (s *linearScheme) BuildIndex(ki KeywordIndex) (time.Duration, error) {
	if err := s.ensureSetup(); err != nil {
		return 0, err
	}
	start := time.Now()

	clear(s.index)
	s.indexSize = 0
	for kw, docs := range ki {
		tok := s.deriver.DeriveToken(kw)
		masked := make([]string, 0, len(docs))
		for _, id := range uniqueSorted(docs) {
			masked = append(masked, s.deriver.MaskDocID(id))
		}
		s.index[tok] = masked
		s.indexSize += entrySize(tok, masked)
	}
	s.keywordCount = len(ki)
	s.documentCount = ki.DocumentCount()

	return time.Since(start), nil
}

func (s *linearScheme) Search(keyword string) ([]string, error) {
	masked, ok := s.index[s.deriver.DeriveToken(keyword)]
	if !ok {
		return []string{}, nil
	}
	results := make([]string, len(masked))
	for i, m := range masked {
		results[i] = token.UnmaskDocID(m)
	}
	return results, nil
}

func (s *linearScheme) SearchAnd(keywords []string) ([]string, error) {
	return clientSideAnd(s, keywords)
}

func (s *linearScheme) SearchOr(keywords []string) ([]string, error) {
	return clientSideOr(s, keywords)
}

func (s *linearScheme) LeakageProfile() LeakageProfile {
	return LeakageProfile{
		LeakSearchPattern:   "Revealed - repeated queries for the same keyword are linkable",
		LeakAccessPattern:   "Revealed - which documents match a query",
		LeakSizePattern:     "Revealed - number of matching documents",
		LeakForwardPrivacy:  "No",
		LeakBackwardPrivacy: "No",
	}
}

func (s *linearScheme) Reset() {
	clear(s.index)
	s.resetCounters()
}

func (s *linearScheme) Close() {
	s.Reset()
	s.closeKey()
}

// clientSideAnd intersects repeated single searches; used by every variant
// without native boolean support. Response-hiding sentinels are stripped
// before combining so padding can never masquerade as a shared document.
func clientSideAnd(s Scheme, keywords []string) ([]string, error) {
	if len(keywords) == 0 {
		return []string{}, nil
	}
	dict := docset.NewDictionary()
	sets := make([]*docset.Set, 0, len(keywords))
	for _, kw := range keywords {
		docs, err := s.Search(kw)
		if err != nil {
			return nil, err
		}
		sets = append(sets, docset.FromDocIDs(dict, stripPadding(docs)))
	}
	return docset.Intersect(sets...).DocIDs(dict), nil
}

// clientSideOr unions repeated single searches.
func clientSideOr(s Scheme, keywords []string) ([]string, error) {
	dict := docset.NewDictionary()
	sets := make([]*docset.Set, 0, len(keywords))
	for _, kw := range keywords {
		docs, err := s.Search(kw)
		if err != nil {
			return nil, err
		}
		sets = append(sets, docset.FromDocIDs(dict, stripPadding(docs)))
	}
	return docset.Union(sets...).DocIDs(dict), nil
}
