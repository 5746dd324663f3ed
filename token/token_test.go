package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeriver(t *testing.T) *PRFDeriver {
	t.Helper()
	key, err := GenerateKey()
	require.NoError(t, err)
	t.Cleanup(key.Zero)

	d, err := NewPRFDeriver(key)
	require.NoError(t, err)
	return d
}

func TestDeriveToken(t *testing.T) {
	d := testDeriver(t)

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, d.DeriveToken("diabetes"), d.DeriveToken("diabetes"))
	})

	t.Run("distinct keywords distinct tokens", func(t *testing.T) {
		assert.NotEqual(t, d.DeriveToken("diabetes"), d.DeriveToken("insulin"))
	})

	t.Run("key-dependent", func(t *testing.T) {
		other := testDeriver(t)
		assert.NotEqual(t, d.DeriveToken("diabetes"), other.DeriveToken("diabetes"))
	})
}

func TestDerivePairToken(t *testing.T) {
	d := testDeriver(t)

	t.Run("order-insensitive", func(t *testing.T) {
		assert.Equal(t, d.DerivePairToken("a", "b"), d.DerivePairToken("b", "a"))
	})

	t.Run("separator-safe", func(t *testing.T) {
		// ("ab", "c") and ("a", "bc") must not collide.
		assert.NotEqual(t, d.DerivePairToken("ab", "c"), d.DerivePairToken("a", "bc"))
	})

	t.Run("domain-separated from single tokens", func(t *testing.T) {
		assert.NotEqual(t, d.DeriveToken("a\x00b"), d.DerivePairToken("a", "b"))
	})
}

func TestDeriveBucketToken(t *testing.T) {
	d := testDeriver(t)

	t.Run("prefix marks bucket tokens", func(t *testing.T) {
		bt := d.DeriveBucketToken("diabetes", 0)
		assert.True(t, IsBucketToken(bt))
		assert.False(t, IsBucketToken(d.DeriveToken("diabetes")))
	})

	t.Run("distinct per bucket index", func(t *testing.T) {
		assert.NotEqual(t, d.DeriveBucketToken("diabetes", 0), d.DeriveBucketToken("diabetes", 1))
	})
}

func TestMaskDocID(t *testing.T) {
	d := testDeriver(t)

	t.Run("round trip", func(t *testing.T) {
		masked := d.MaskDocID("doc42")
		assert.NotEqual(t, "doc42", masked)
		assert.Equal(t, "doc42", UnmaskDocID(masked))
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, d.MaskDocID("doc42"), d.MaskDocID("doc42"))
	})

	t.Run("unmask passes through unmasked values", func(t *testing.T) {
		assert.Equal(t, "plain", UnmaskDocID("plain"))
	})
}

func TestSortedPair(t *testing.T) {
	a, b := SortedPair("insulin", "diabetes")
	assert.Equal(t, "diabetes", a)
	assert.Equal(t, "insulin", b)

	a, b = SortedPair("diabetes", "insulin")
	assert.Equal(t, "diabetes", a)
	assert.Equal(t, "insulin", b)
}

func TestSortKeywords(t *testing.T) {
	in := []string{"c", "a", "b"}
	out := SortKeywords(in)
	assert.Equal(t, []string{"a", "b", "c"}, out)
	assert.Equal(t, []string{"c", "a", "b"}, in, "input must not be mutated")
}
