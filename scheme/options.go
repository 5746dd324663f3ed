package scheme

// Options carries the tunables shared across constructions. Zero values are
// replaced by defaults in DefaultOptions.
type Options struct {
	// PackingParameter is the bucket size P for two-level variants.
	PackingParameter int

	// BigBlockThreshold is the result count at or above which a keyword's
	// postings are bucketed into the second level.
	BigBlockThreshold int

	// FalsePositiveRate is the Bloom filter target false-positive rate.
	// It only shapes the early-rejection signal; returned results are
	// always exact.
	FalsePositiveRate float64

	// BloomHashes is the Bloom filter hash-function count.
	BloomHashes int

	// PairwiseKeywordCap bounds the O(K²) pairwise-intersection table of
	// the Bloom boolean variant to the first N distinct keywords in
	// lexicographic order. The cap is a memory bound, not a contract; the
	// exact fallback covers uncovered pairs.
	PairwiseKeywordCap int

	// DisablePairTable skips pair-table lookups so the s-term and Bloom
	// fallback paths can be exercised directly.
	DisablePairTable bool
}

// DefaultOptions returns the tunables of the published constructions.
func DefaultOptions() Options {
	return Options{
		PackingParameter:   10,
		BigBlockThreshold:  1000,
		FalsePositiveRate:  0.01,
		BloomHashes:        3,
		PairwiseKeywordCap: 100,
	}
}

// WithPackingParameter sets the two-level bucket size.
func WithPackingParameter(p int) func(*Options) {
	return func(o *Options) {
		if p > 0 {
			o.PackingParameter = p
		}
	}
}

// WithBigBlockThreshold sets the bucketing threshold.
func WithBigBlockThreshold(n int) func(*Options) {
	return func(o *Options) {
		if n > 0 {
			o.BigBlockThreshold = n
		}
	}
}

// WithFalsePositiveRate sets the Bloom filter target rate.
func WithFalsePositiveRate(p float64) func(*Options) {
	return func(o *Options) {
		if p > 0 && p < 1 {
			o.FalsePositiveRate = p
		}
	}
}

// WithPairwiseKeywordCap bounds the Bloom variant's pair table.
func WithPairwiseKeywordCap(n int) func(*Options) {
	return func(o *Options) {
		if n >= 0 {
			o.PairwiseKeywordCap = n
		}
	}
}

// WithPairTableDisabled forces conjunctions onto the fallback paths.
func WithPairTableDisabled(disabled bool) func(*Options) {
	return func(o *Options) {
		o.DisablePairTable = disabled
	}
}
