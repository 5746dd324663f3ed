package leakage

import "strings"

// Analyzer classifies declared leakage descriptions and computes security
// scores. The zero value is ready to use.
type Analyzer struct{}

// Analyze builds the security report for one scheme from its name and
// declared profile (category key to free-text description).
func (Analyzer) Analyze(schemeName string, profile map[string]string) *Report {
	report := &Report{SchemeName: schemeName}

	for _, cat := range Categories() {
		desc, declared := profile[string(cat)]
		entry := Entry{Category: cat, Description: desc}

		switch {
		case !declared:
			// Fail closed: undeclared categories count as leaked.
			entry.Leaked = true
			if cat.privacyCategory() {
				entry.Description = "No"
			} else {
				entry.Description = "Undeclared - assumed revealed"
			}
		case cat.privacyCategory():
			entry.Leaked = !isAffirmative(desc)
		default:
			entry.Leaked = !describesHidden(desc)
		}

		report.Entries = append(report.Entries, entry)
	}

	report.score()
	return report
}

// AnalyzeAll reports on several schemes in input order.
func (a Analyzer) AnalyzeAll(profiles []SchemeProfile) []*Report {
	reports := make([]*Report, 0, len(profiles))
	for _, p := range profiles {
		reports = append(reports, a.Analyze(p.Name, p.Profile))
	}
	return reports
}

// SchemeProfile pairs a scheme name with its declared leakage.
type SchemeProfile struct {
	Name    string
	Profile map[string]string
}

// describesHidden reports whether a free-text description claims the
// category is protected. Anything else, including ambiguous text, counts as
// leaked.
func describesHidden(desc string) bool {
	lower := strings.ToLower(desc)
	for _, phrase := range []string{"hidden", "hide", "not leaked", "not revealed", "private", "protected", "obfuscated"} {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// isAffirmative reports whether a forward/backward-privacy declaration
// claims the property holds.
func isAffirmative(desc string) bool {
	switch strings.ToLower(strings.TrimSpace(desc)) {
	case "yes", "true", "supported":
		return true
	default:
		return false
	}
}
