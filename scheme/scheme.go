// Package scheme implements the four searchable-encryption index
// constructions compared by the benchmark suite.
//
// Every variant satisfies the Scheme contract: key setup, encrypted index
// construction from a plaintext keyword index, single-keyword search, and
// boolean AND/OR resolution (native or client-side). The constructions model
// the algorithmic shape and leakage profile of real SSE schemes; token
// derivation is a keyed PRF, not a proven cryptographic construction, and
// index entries are masked rather than authenticated ciphertext.
package scheme

import "time"

// KeywordIndex is the shared read-only plaintext input: keyword to the set of
// matching document IDs. Every keyword maps to a non-empty set.
type KeywordIndex map[string][]string

// Keywords returns the keyword vocabulary in unspecified order.
func (ki KeywordIndex) Keywords() []string {
	out := make([]string, 0, len(ki))
	for kw := range ki {
		out = append(out, kw)
	}
	return out
}

// DocumentCount returns the number of distinct document IDs across all
// keywords.
func (ki KeywordIndex) DocumentCount() int {
	seen := make(map[string]struct{})
	for _, docs := range ki {
		for _, d := range docs {
			seen[d] = struct{}{}
		}
	}
	return len(seen)
}

// LeakageProfile is a scheme's self-declared leakage: category key to a
// free-text description. The leakage analyzer interprets the text; categories
// left undeclared are treated as leaked.
type LeakageProfile map[string]string

// Leakage category keys shared between schemes and the analyzer.
const (
	LeakSearchPattern       = "search_pattern"
	LeakAccessPattern       = "access_pattern"
	LeakSizePattern         = "size_pattern"
	LeakVolumePattern       = "volume_pattern"
	LeakQueryEquality       = "query_equality"
	LeakIntersectionPattern = "intersection_pattern"
	LeakForwardPrivacy      = "forward_privacy"
	LeakBackwardPrivacy     = "backward_privacy"
)

// Scheme is the capability contract shared by all constructions.
//
// Implementations are not safe for concurrent use; the measurement engine
// drives them strictly sequentially.
type Scheme interface {
	// Name returns the unique scheme name (e.g. "2Lev-RH").
	Name() string

	// Description returns a one-line summary of the construction.
	Description() string

	// Setup generates a fresh key and returns a copy of it.
	Setup() ([]byte, error)

	// SetupWithKey initializes the scheme with an existing key.
	// Keys shorter than 128 bits are rejected.
	SetupWithKey(key []byte) error

	// BuildIndex constructs the encrypted index from the plaintext keyword
	// index and reports the build duration. It implicitly runs Setup when
	// no key exists yet.
	BuildIndex(ki KeywordIndex) (time.Duration, error)

	// Search returns the document IDs matching a single keyword.
	// Unknown keywords yield an empty result, never an error.
	Search(keyword string) ([]string, error)

	// SearchAnd returns the documents matching every keyword.
	SearchAnd(keywords []string) ([]string, error)

	// SearchOr returns the documents matching at least one keyword.
	SearchOr(keywords []string) ([]string, error)

	// SupportsBoolean reports whether AND/OR are resolved natively rather
	// than by client-side combination of single searches.
	SupportsBoolean() bool

	// ResponseHiding reports whether single-search result sizes are padded.
	ResponseHiding() bool

	// SearchComplexity describes the theoretical search cost.
	SearchComplexity() string

	// LeakageProfile returns the scheme's self-declared leakage.
	LeakageProfile() LeakageProfile

	// IndexSizeBytes estimates the encrypted index size.
	IndexSizeBytes() uint64

	// KeywordCount returns the number of indexed keywords.
	KeywordCount() int

	// DocumentCount returns the number of distinct indexed documents.
	DocumentCount() int

	// Reset discards the encrypted index so the scheme can be rebuilt.
	// The key survives a reset.
	Reset()

	// Close releases all state including the key material, which is
	// zero-erased.
	Close()
}
