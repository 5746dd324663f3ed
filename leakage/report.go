package leakage

import (
	"fmt"
	"strings"
)

// Rating labels for score bands.
const (
	RatingHigh    = "HIGH"
	RatingMedium  = "MEDIUM"
	RatingLow     = "LOW"
	RatingMinimal = "MINIMAL"
)

// Entry is one category's verdict inside a report.
type Entry struct {
	Category    Category `json:"type"`
	Description string   `json:"description"`
	Leaked      bool     `json:"leaked"`
}

// Report is the security verdict for one scheme: per-category entries in
// fixed order plus the derived score and rating. Like the benchmark
// aggregate it is a plain serializable value object.
type Report struct {
	SchemeName string  `json:"schemeName"`
	Score      int     `json:"securityScore"`
	Rating     string  `json:"securityRating"`
	Entries    []Entry `json:"leakageProfile"`
}

// IsLeaked reports the verdict for one category.
func (r *Report) IsLeaked(cat Category) bool {
	for _, e := range r.Entries {
		if e.Category == cat {
			return e.Leaked
		}
	}
	return false
}

// LeakedCount returns how many categories leaked.
func (r *Report) LeakedCount() int {
	n := 0
	for _, e := range r.Entries {
		if e.Leaked {
			n++
		}
	}
	return n
}

// ProtectedCount returns how many categories are protected.
func (r *Report) ProtectedCount() int {
	return len(r.Entries) - r.LeakedCount()
}

// score derives the 0-100 security score and rating: the protected ratio,
// minus 15 when the access pattern leaks, plus 10 each for forward and
// backward privacy, clamped to [0, 100].
func (r *Report) score() {
	total := len(r.Entries)
	if total == 0 {
		r.Score = 0
		r.Rating = RatingMinimal
		return
	}

	s := r.ProtectedCount() * 100 / total
	if r.IsLeaked(AccessPattern) {
		s -= 15
	}
	if !r.IsLeaked(ForwardPrivacy) {
		s += 10
	}
	if !r.IsLeaked(BackwardPrivacy) {
		s += 10
	}
	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}
	r.Score = s

	switch {
	case s >= 80:
		r.Rating = RatingHigh
	case s >= 60:
		r.Rating = RatingMedium
	case s >= 40:
		r.Rating = RatingLow
	default:
		r.Rating = RatingMinimal
	}
}

// AttackVectors lists the classic attacks enabled by this report's leaked
// categories.
func (r *Report) AttackVectors() []string {
	var attacks []string
	if r.IsLeaked(SearchPattern) {
		attacks = append(attacks, "Frequency analysis: encrypted queries correlate with known keyword frequencies")
	}
	if r.IsLeaked(AccessPattern) {
		attacks = append(attacks,
			"Known-document attack: partial plaintext knowledge reveals query keywords",
			"Co-occurrence attack: statistical analysis of document access patterns",
		)
	}
	if r.IsLeaked(SizePattern) {
		attacks = append(attacks, "Count attack: result counts reveal query selectivity")
	}
	if r.IsLeaked(IntersectionPattern) {
		attacks = append(attacks, "IKK-style attack: intersection patterns leak across conjunctive queries")
	}
	if r.IsLeaked(ForwardPrivacy) {
		attacks = append(attacks, "Update correlation: new additions link to past queries")
	}
	return attacks
}

// ComparisonMatrix renders a plain-text leaked/safe matrix across reports,
// one row per category plus a score row.
func ComparisonMatrix(reports []*Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%-22s", "Category")
	for _, r := range reports {
		fmt.Fprintf(&sb, " | %-10s", r.SchemeName)
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 22+len(reports)*13))
	sb.WriteString("\n")

	for _, cat := range Categories() {
		fmt.Fprintf(&sb, "%-22s", cat.DisplayName())
		for _, r := range reports {
			status := "SAFE"
			if r.IsLeaked(cat) {
				status = "LEAKED"
			}
			fmt.Fprintf(&sb, " | %-10s", status)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "%-22s", "Score")
	for _, r := range reports {
		fmt.Fprintf(&sb, " | %-10d", r.Score)
	}
	sb.WriteString("\n")

	return sb.String()
}
