package scheme

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Pairs outside the capped pair table must still resolve exactly through the
// Bloom-plus-exact fallback.
func TestZMFPairTableCap(t *testing.T) {
	ki := make(KeywordIndex)
	// kw00..kw09 all share docA; with a cap of 2 only the pair
	// (kw00, kw01) is precomputed.
	for i := 0; i < 10; i++ {
		ki[fmt.Sprintf("kw%02d", i)] = []string{"docA", fmt.Sprintf("doc%02d", i)}
	}

	s := New(VariantIEXZMF, WithPairwiseKeywordCap(2))
	defer s.Close()
	_, err := s.BuildIndex(ki)
	require.NoError(t, err)

	t.Run("covered pair", func(t *testing.T) {
		got, err := s.SearchAnd([]string{"kw00", "kw01"})
		require.NoError(t, err)
		assert.Equal(t, []string{"docA"}, got)
	})

	t.Run("uncovered pair falls back", func(t *testing.T) {
		got, err := s.SearchAnd([]string{"kw07", "kw08"})
		require.NoError(t, err)
		assert.Equal(t, []string{"docA"}, got)
	})

	t.Run("wide conjunction", func(t *testing.T) {
		keywords := make([]string, 10)
		for i := range keywords {
			keywords[i] = fmt.Sprintf("kw%02d", i)
		}
		got, err := s.SearchAnd(keywords)
		require.NoError(t, err)
		assert.Equal(t, []string{"docA"}, got)
	})
}

func TestZMFDisjointConjunction(t *testing.T) {
	ki := KeywordIndex{
		"left":  {"doc1", "doc2"},
		"right": {"doc3", "doc4"},
	}

	s := New(VariantIEXZMF, WithPairTableDisabled(true))
	defer s.Close()
	_, err := s.BuildIndex(ki)
	require.NoError(t, err)

	// Whether the Bloom AND short-circuits or the exact intersection runs,
	// the answer is empty either way.
	got, err := s.SearchAnd([]string{"left", "right"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestZMFUnknownTermEmptiesConjunction(t *testing.T) {
	s := build(t, VariantIEXZMF)

	got, err := s.SearchAnd([]string{"diabetes", "nonexistent"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

// The cross-tag variant's pair table and s-term fallback must agree.
func TestIEXTwoLevFallbackAgreement(t *testing.T) {
	fast := build(t, VariantIEXTwoLev)
	slow := build(t, VariantIEXTwoLev, WithPairTableDisabled(true))

	pairs := [][]string{
		{"diabetes", "insulin"},
		{"insulin", "diabetes"},
		{"diabetes", "hypertension"},
		{"flu", "rare"},
	}
	for _, pair := range pairs {
		a, err := fast.SearchAnd(pair)
		require.NoError(t, err)
		b, err := slow.SearchAnd(pair)
		require.NoError(t, err)
		assert.ElementsMatch(t, a, b, "pair %v", pair)
	}
}
