// Package leakage scores the self-declared leakage profiles of schemes into
// comparable security reports.
//
// The model is a comparative heuristic over eight fixed leakage categories,
// not a formal security proof: it ranks constructions against each other, it
// does not certify any of them.
package leakage

import "github.com/giorgiosiniscalchi/clusion-sse-benchmark/scheme"

// Category identifies one of the fixed leakage dimensions.
type Category string

const (
	SearchPattern       Category = Category(scheme.LeakSearchPattern)
	AccessPattern       Category = Category(scheme.LeakAccessPattern)
	SizePattern         Category = Category(scheme.LeakSizePattern)
	VolumePattern       Category = Category(scheme.LeakVolumePattern)
	QueryEquality       Category = Category(scheme.LeakQueryEquality)
	IntersectionPattern Category = Category(scheme.LeakIntersectionPattern)
	ForwardPrivacy      Category = Category(scheme.LeakForwardPrivacy)
	BackwardPrivacy     Category = Category(scheme.LeakBackwardPrivacy)
)

// Categories returns all categories in the fixed report order.
func Categories() []Category {
	return []Category{
		SearchPattern,
		AccessPattern,
		SizePattern,
		VolumePattern,
		QueryEquality,
		IntersectionPattern,
		ForwardPrivacy,
		BackwardPrivacy,
	}
}

// DisplayName returns the human-readable category name.
func (c Category) DisplayName() string {
	switch c {
	case SearchPattern:
		return "Search Pattern"
	case AccessPattern:
		return "Access Pattern"
	case SizePattern:
		return "Size Pattern"
	case VolumePattern:
		return "Volume Pattern"
	case QueryEquality:
		return "Query Equality"
	case IntersectionPattern:
		return "Intersection Pattern"
	case ForwardPrivacy:
		return "Forward Privacy"
	case BackwardPrivacy:
		return "Backward Privacy"
	default:
		return string(c)
	}
}

// Meaning returns what an adversary learns when the category leaks.
func (c Category) Meaning() string {
	switch c {
	case SearchPattern:
		return "Repeated queries for the same keyword are linkable"
	case AccessPattern:
		return "Reveals which documents match a query"
	case SizePattern:
		return "Reveals the number of matching documents"
	case VolumePattern:
		return "Reveals the total size of matching documents"
	case QueryEquality:
		return "Reveals when the same query is repeated"
	case IntersectionPattern:
		return "Reveals document overlap between queries"
	case ForwardPrivacy:
		return "Additions cannot be linked to past queries"
	case BackwardPrivacy:
		return "Deletions do not leak to later queries"
	default:
		return ""
	}
}

// privacyCategory reports whether the category is declared affirmatively
// ("yes" means protected) rather than descriptively.
func (c Category) privacyCategory() bool {
	return c == ForwardPrivacy || c == BackwardPrivacy
}
