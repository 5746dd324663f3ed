package bloom

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimalBits(t *testing.T) {
	tests := []struct {
		name string
		n    int
		p    float64
		want uint
	}{
		{"thousand at one percent", 1000, 0.01, 9586},
		{"hundred at one percent", 100, 0.01, 959},
		{"tiny input clamps to floor", 1, 0.5, MinBits},
		{"zero elements clamps to floor", 0, 0.01, MinBits},
		{"invalid rate clamps to floor", 100, 1.5, MinBits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OptimalBits(tt.n, tt.p))
		})
	}
}

func TestOptimalHashes(t *testing.T) {
	assert.Equal(t, 7, OptimalHashes(9586, 1000))
	assert.Equal(t, 1, OptimalHashes(64, 0))
	assert.Equal(t, 1, OptimalHashes(10, 1000))
}

func TestFilterMembership(t *testing.T) {
	f := NewOptimal(100, 0.01)

	members := make([]string, 100)
	for i := range members {
		members[i] = fmt.Sprintf("doc%03d", i)
		f.Add(members[i])
	}

	t.Run("no false negatives", func(t *testing.T) {
		for _, m := range members {
			assert.True(t, f.MayContain(m), "member %s reported absent", m)
		}
	})

	t.Run("mostly rejects non-members", func(t *testing.T) {
		falsePositives := 0
		for i := 0; i < 1000; i++ {
			if f.MayContain(fmt.Sprintf("absent%04d", i)) {
				falsePositives++
			}
		}
		// Target rate is 1%; allow generous slack.
		assert.Less(t, falsePositives, 50)
	})
}

func TestFilterAnd(t *testing.T) {
	t.Run("intersection keeps shared members", func(t *testing.T) {
		a := New(1024, 3)
		b := New(1024, 3)
		for _, m := range []string{"x", "y"} {
			a.Add(m)
		}
		for _, m := range []string{"y", "z"} {
			b.Add(m)
		}

		got := a.Clone()
		require.True(t, got.And(b))
		assert.True(t, got.MayContain("y"))
		assert.False(t, got.MayContain("x"))
	})

	t.Run("size mismatch refused", func(t *testing.T) {
		a := New(1024, 3)
		b := New(2048, 3)
		assert.False(t, a.And(b))
	})

	t.Run("hash count mismatch refused", func(t *testing.T) {
		a := New(1024, 3)
		b := New(1024, 4)
		assert.False(t, a.And(b))
	})

	t.Run("nil refused", func(t *testing.T) {
		a := New(1024, 3)
		assert.False(t, a.And(nil))
	})

	t.Run("disjoint members empty out", func(t *testing.T) {
		a := New(1024, 3)
		b := New(1024, 3)
		a.Add("only-in-a")
		b.Add("only-in-b")

		got := a.Clone()
		require.True(t, got.And(b))
		// With one member each in 1024 bits a collision is unlikely.
		assert.True(t, got.IsEmpty())
	})
}

func TestFilterClone(t *testing.T) {
	a := New(MinBits, 1)
	a.Add("x")

	c := a.Clone()
	c.Add("y")

	assert.True(t, c.MayContain("x"))
	assert.True(t, a.MayContain("x"))
	assert.Equal(t, a.Bits(), c.Bits())
	assert.Equal(t, a.Hashes(), c.Hashes())
}

func TestNewClampsArguments(t *testing.T) {
	f := New(1, 0)
	assert.Equal(t, uint(MinBits), f.Bits())
	assert.Equal(t, 1, f.Hashes())
	assert.Positive(t, f.SizeBytes())
}
