// Package bloom implements the fixed-size approximate membership filters
// used by the Bloom-backed scheme variants.
//
// A filter never produces false negatives: callers may use an all-zero
// intersection to reject a conjunction outright, but a non-empty result only
// signals that exact verification is worthwhile.
package bloom

import (
	"encoding/binary"
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/zeebo/blake3"
)

// MinBits is the floor applied to computed filter sizes.
const MinBits = 64

// OptimalBits returns the filter size in bits for n expected elements at
// target false-positive rate p: m = ceil(-n*ln(p) / (ln 2)^2), clamped to
// MinBits.
func OptimalBits(n int, p float64) uint {
	if n <= 0 || p <= 0 || p >= 1 {
		return MinBits
	}
	m := math.Ceil(-float64(n) * math.Log(p) / (math.Ln2 * math.Ln2))
	if m < MinBits {
		return MinBits
	}
	return uint(m)
}

// OptimalHashes returns the hash-function count for a filter of m bits
// holding n elements: k = round(m/n * ln 2), at least 1.
func OptimalHashes(m uint, n int) int {
	if n <= 0 {
		return 1
	}
	k := int(math.Round(float64(m) / float64(n) * math.Ln2))
	if k < 1 {
		return 1
	}
	return k
}

// Filter is a fixed-size Bloom filter over string members.
type Filter struct {
	bits   *bitset.BitSet
	m      uint
	hashes int
}

// New creates a filter of m bits using k hash functions.
func New(m uint, k int) *Filter {
	if m < MinBits {
		m = MinBits
	}
	if k < 1 {
		k = 1
	}
	return &Filter{bits: bitset.New(m), m: m, hashes: k}
}

// NewOptimal sizes a filter for n expected elements at false-positive rate p.
func NewOptimal(n int, p float64) *Filter {
	m := OptimalBits(n, p)
	return New(m, OptimalHashes(m, n))
}

// Add inserts a member.
func (f *Filter) Add(member string) {
	h1, h2 := f.hashPair(member)
	for i := 0; i < f.hashes; i++ {
		f.bits.Set(f.position(h1, h2, i))
	}
}

// MayContain reports whether member might be in the set. False means
// definitely absent.
func (f *Filter) MayContain(member string) bool {
	h1, h2 := f.hashPair(member)
	for i := 0; i < f.hashes; i++ {
		if !f.bits.Test(f.position(h1, h2, i)) {
			return false
		}
	}
	return true
}

// And intersects f with other in place. Filters must share size and hash
// count; mismatched filters make the no-false-negative guarantee void, so
// And reports whether the intersection was performed.
func (f *Filter) And(other *Filter) bool {
	if other == nil || f.m != other.m || f.hashes != other.hashes {
		return false
	}
	f.bits.InPlaceIntersection(other.bits)
	return true
}

// Clone returns a deep copy.
func (f *Filter) Clone() *Filter {
	return &Filter{bits: f.bits.Clone(), m: f.m, hashes: f.hashes}
}

// IsEmpty reports whether no bit is set.
func (f *Filter) IsEmpty() bool { return f.bits.None() }

// Bits returns the configured filter size in bits.
func (f *Filter) Bits() uint { return f.m }

// Hashes returns the configured hash-function count.
func (f *Filter) Hashes() int { return f.hashes }

// SizeBytes returns the in-memory size of the bit vector.
func (f *Filter) SizeBytes() uint64 { return uint64(f.bits.BinaryStorageSize()) }

// hashPair derives two independent 64-bit hashes from one BLAKE3 digest;
// position combines them by double hashing (h1 + i*h2 mod m).
func (f *Filter) hashPair(member string) (uint64, uint64) {
	sum := blake3.Sum256([]byte(member))
	h1 := binary.LittleEndian.Uint64(sum[0:8])
	h2 := binary.LittleEndian.Uint64(sum[8:16])
	if h2 == 0 {
		h2 = 1
	}
	return h1, h2
}

func (f *Filter) position(h1, h2 uint64, i int) uint {
	return uint((h1 + uint64(i)*h2) % uint64(f.m))
}
