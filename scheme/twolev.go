package scheme

import (
	"fmt"
	"math/bits"
	"strings"
	"time"

	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/token"
)

// paddingPrefix marks response-hiding sentinel entries. Masked document IDs
// always begin with a hex PRF tag, so the prefix cannot collide with a stored
// entry, and dataset loading rejects raw document IDs that carry it.
const paddingPrefix = "pad::"

// IsPadding reports whether a returned entry is a response-hiding sentinel
// rather than a real document ID.
func IsPadding(entry string) bool {
	return strings.HasPrefix(entry, paddingPrefix)
}

func paddingSentinel(i int) string {
	return fmt.Sprintf("%s%d", paddingPrefix, i)
}

// stripPadding removes sentinel entries; the input slice is not modified.
func stripPadding(docs []string) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		if !IsPadding(d) {
			out = append(out, d)
		}
	}
	return out
}

// nextPowerOfTwo returns the smallest power of two >= n, with a floor of 1.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// twoLevScheme is the two-level sub-linear construction. Keywords whose
// posting list reaches BigBlockThreshold are split into buckets of
// PackingParameter entries: the first level then stores bucket tokens and the
// second level the bucket members. Short posting lists stay in the first
// level. The response-hiding mode pads assembled results, after lookup, to
// the next power of two.
type twoLevScheme struct {
	base
	opts           Options
	responseHiding bool

	firstLevel  map[token.Token][]string
	secondLevel map[token.Token][]string
}

func newTwoLev(responseHiding bool, opts Options) *twoLevScheme {
	return &twoLevScheme{
		opts:           opts,
		responseHiding: responseHiding,
		firstLevel:     make(map[token.Token][]string),
		secondLevel:    make(map[token.Token][]string),
	}
}

func (s *twoLevScheme) Name() string {
	if s.responseHiding {
		return VariantTwoLevRH.String()
	}
	return VariantTwoLevRR.String()
}

func (s *twoLevScheme) Description() string {
	if s.responseHiding {
		return "Two-level sub-linear index hiding result sizes behind power-of-two padding"
	}
	return "Two-level response-revealing index with O(r/p + log n) search"
}

func (s *twoLevScheme) SupportsBoolean() bool { return false }
func (s *twoLevScheme) ResponseHiding() bool  { return s.responseHiding }

func (s *twoLevScheme) SearchComplexity() string { return "O(r/p + log n) sub-linear" }

func (s *twoLevScheme) BuildIndex(ki KeywordIndex) (time.Duration, error) {
	if err := s.ensureSetup(); err != nil {
		return 0, err
	}
	start := time.Now()

	clear(s.firstLevel)
	clear(s.secondLevel)
	s.indexSize = 0

	for kw, docs := range ki {
		tok := s.deriver.DeriveToken(kw)
		sorted := uniqueSorted(docs)

		if len(sorted) >= s.opts.BigBlockThreshold {
			bucketTokens := s.buildBuckets(kw, sorted)
			s.firstLevel[tok] = bucketTokens
			s.indexSize += entrySize(tok, bucketTokens)
			continue
		}

		masked := make([]string, len(sorted))
		for i, id := range sorted {
			masked[i] = s.deriver.MaskDocID(id)
		}
		s.firstLevel[tok] = masked
		s.indexSize += entrySize(tok, masked)
	}

	s.keywordCount = len(ki)
	s.documentCount = ki.DocumentCount()

	return time.Since(start), nil
}

// buildBuckets partitions a big keyword's postings into fixed-size buckets
// and returns the ordered bucket token list for the first level.
func (s *twoLevScheme) buildBuckets(keyword string, sorted []string) []string {
	p := s.opts.PackingParameter
	bucketTokens := make([]string, 0, (len(sorted)+p-1)/p)
	for i := 0; i < len(sorted); i += p {
		end := min(i+p, len(sorted))
		bucketTok := s.deriver.DeriveBucketToken(keyword, i/p)
		members := make([]string, 0, end-i)
		for _, id := range sorted[i:end] {
			members = append(members, s.deriver.MaskDocID(id))
		}
		s.secondLevel[bucketTok] = members
		s.indexSize += entrySize(bucketTok, members)
		bucketTokens = append(bucketTokens, string(bucketTok))
	}
	return bucketTokens
}

func (s *twoLevScheme) Search(keyword string) ([]string, error) {
	entries, ok := s.firstLevel[s.deriver.DeriveToken(keyword)]
	if !ok {
		// Unknown keywords return empty even in response-hiding mode;
		// padding applies to assembled results only.
		return []string{}, nil
	}

	results := make([]string, 0, len(entries))
	for _, entry := range entries {
		if token.IsBucketToken(token.Token(entry)) {
			for _, masked := range s.secondLevel[token.Token(entry)] {
				results = append(results, token.UnmaskDocID(masked))
			}
			continue
		}
		results = append(results, token.UnmaskDocID(entry))
	}

	if s.responseHiding {
		results = padToPowerOfTwo(results)
	}
	return results, nil
}

// padToPowerOfTwo appends sentinels until the result length is the next
// power of two at or above the true size.
func padToPowerOfTwo(results []string) []string {
	target := nextPowerOfTwo(len(results))
	for len(results) < target {
		results = append(results, paddingSentinel(len(results)))
	}
	return results
}

func (s *twoLevScheme) SearchAnd(keywords []string) ([]string, error) {
	return clientSideAnd(s, keywords)
}

func (s *twoLevScheme) SearchOr(keywords []string) ([]string, error) {
	return clientSideOr(s, keywords)
}

func (s *twoLevScheme) LeakageProfile() LeakageProfile {
	profile := LeakageProfile{
		LeakSearchPattern:   "Revealed - repeated queries linkable",
		LeakAccessPattern:   "Revealed - which documents match",
		LeakForwardPrivacy:  "No",
		LeakBackwardPrivacy: "No",
	}
	if s.responseHiding {
		profile[LeakSizePattern] = "Hidden - result count padded to a power of two"
	} else {
		profile[LeakSizePattern] = "Revealed - result count visible"
	}
	return profile
}

func (s *twoLevScheme) Reset() {
	clear(s.firstLevel)
	clear(s.secondLevel)
	s.resetCounters()
}

func (s *twoLevScheme) Close() {
	s.Reset()
	s.closeKey()
}
