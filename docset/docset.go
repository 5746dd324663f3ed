// Package docset provides document-ID set algebra over Roaring Bitmaps.
//
// Document IDs are opaque strings; a Dictionary interns them to dense uint32
// ordinals so posting sets can use bitmap intersection and union instead of
// hash-set loops.
package docset

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// Dictionary interns document-ID strings to stable uint32 ordinals.
// Ordinals are assigned in first-seen order and never reused.
type Dictionary struct {
	ids     map[string]uint32
	reverse []string
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{ids: make(map[string]uint32)}
}

// Intern returns the ordinal for docID, assigning one if unseen.
func (d *Dictionary) Intern(docID string) uint32 {
	if ord, ok := d.ids[docID]; ok {
		return ord
	}
	ord := uint32(len(d.reverse))
	d.ids[docID] = ord
	d.reverse = append(d.reverse, docID)
	return ord
}

// Lookup returns the ordinal for docID if present.
func (d *Dictionary) Lookup(docID string) (uint32, bool) {
	ord, ok := d.ids[docID]
	return ord, ok
}

// DocID returns the document ID for ord. Unknown ordinals return "".
func (d *Dictionary) DocID(ord uint32) string {
	if int(ord) >= len(d.reverse) {
		return ""
	}
	return d.reverse[ord]
}

// Len returns the number of interned IDs.
func (d *Dictionary) Len() int { return len(d.reverse) }

// Set is a set of interned document ordinals.
type Set struct {
	rb *roaring.Bitmap
}

// New creates an empty set.
func New() *Set {
	return &Set{rb: roaring.New()}
}

// FromDocIDs interns each ID through dict and collects the ordinals.
func FromDocIDs(dict *Dictionary, docIDs []string) *Set {
	s := New()
	for _, id := range docIDs {
		s.rb.Add(dict.Intern(id))
	}
	return s
}

// Add inserts an ordinal.
func (s *Set) Add(ord uint32) { s.rb.Add(ord) }

// Contains reports membership of an ordinal.
func (s *Set) Contains(ord uint32) bool { return s.rb.Contains(ord) }

// Len returns the cardinality.
func (s *Set) Len() int { return int(s.rb.GetCardinality()) }

// IsEmpty reports whether the set has no members.
func (s *Set) IsEmpty() bool { return s.rb.IsEmpty() }

// Clone returns a deep copy.
func (s *Set) Clone() *Set {
	return &Set{rb: s.rb.Clone()}
}

// And intersects s with other in place.
func (s *Set) And(other *Set) { s.rb.And(other.rb) }

// Or unions other into s in place.
func (s *Set) Or(other *Set) { s.rb.Or(other.rb) }

// Intersect returns the intersection of all sets without mutating them.
// An empty argument list yields an empty set.
func Intersect(sets ...*Set) *Set {
	if len(sets) == 0 {
		return New()
	}
	out := sets[0].Clone()
	for _, s := range sets[1:] {
		out.And(s)
	}
	return out
}

// Union returns the union of all sets without mutating them.
func Union(sets ...*Set) *Set {
	out := New()
	for _, s := range sets {
		out.Or(s)
	}
	return out
}

// DocIDs materializes the set back to sorted document-ID strings.
func (s *Set) DocIDs(dict *Dictionary) []string {
	out := make([]string, 0, s.Len())
	it := s.rb.Iterator()
	for it.HasNext() {
		out = append(out, dict.DocID(it.Next()))
	}
	sort.Strings(out)
	return out
}

// SizeBytes returns the serialized bitmap size, used for index-size
// accounting.
func (s *Set) SizeBytes() uint64 { return s.rb.GetSizeInBytes() }
