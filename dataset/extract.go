package dataset

import (
	"sort"
	"strings"
	"unicode"
)

// Common English stopwords excluded from extracted keywords.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "from": {}, "as": {}, "is": {}, "was": {},
	"are": {}, "were": {}, "been": {}, "be": {}, "have": {}, "has": {},
	"had": {}, "do": {}, "does": {}, "did": {}, "will": {}, "would": {},
	"could": {}, "should": {}, "may": {}, "might": {}, "must": {},
	"shall": {}, "can": {}, "need": {}, "not": {}, "no": {}, "this": {},
	"that": {}, "these": {}, "those": {}, "it": {}, "its": {},
}

// Extractor tokenizes free text into normalized keywords.
type Extractor struct {
	minLength       int
	maxLength       int
	lowercase       bool
	removeStopwords bool
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithMinLength sets the minimum keyword length (default 2).
func WithMinLength(n int) ExtractorOption {
	return func(e *Extractor) { e.minLength = n }
}

// WithMaxLength sets the maximum keyword length (default 50).
func WithMaxLength(n int) ExtractorOption {
	return func(e *Extractor) { e.maxLength = n }
}

// WithStopwords controls stopword removal (default on).
func WithStopwords(remove bool) ExtractorOption {
	return func(e *Extractor) { e.removeStopwords = remove }
}

// WithLowercase controls case folding (default on).
func WithLowercase(fold bool) ExtractorOption {
	return func(e *Extractor) { e.lowercase = fold }
}

// NewExtractor creates an Extractor with the given options applied
// over the defaults.
func NewExtractor(optFns ...ExtractorOption) *Extractor {
	e := &Extractor{
		minLength:       2,
		maxLength:       50,
		lowercase:       true,
		removeStopwords: true,
	}
	for _, fn := range optFns {
		fn(e)
	}
	return e
}

// Extract returns the sorted, deduplicated keywords found in text.
func (e *Extractor) Extract(text string) []string {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if e.lowercase {
			tok = strings.ToLower(tok)
		}
		if len(tok) < e.minLength || len(tok) > e.maxLength {
			continue
		}
		if e.removeStopwords {
			if _, stop := stopwords[tok]; stop {
				continue
			}
		}
		seen[tok] = struct{}{}
	}

	keywords := make([]string, 0, len(seen))
	for kw := range seen {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)

	return keywords
}
