package textnorm

import (
	"strings"
)

// Normalizer bundles the comparison and display normalisation rules spec
// §4.9 defines, so callers don't have to remember the repair/strip/fold
// order in multiple places.
type Normalizer struct{}

// New returns a Normalizer. It carries no state; the zero value works too.
func New() *Normalizer {
	return &Normalizer{}
}

// CollapseWhitespace trims and folds runs of whitespace to a single space.
func CollapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

// comparisonForm is the canonical form used for equivalence and similarity:
// encoding repair, diacritics stripped, lowercased, whitespace collapsed.
func comparisonForm(s string) string {
	s = FixCzechEncoding(s)
	s = RemoveDiacritics(s)
	s = strings.ToLower(s)
	s = CollapseWhitespace(s)
	return strings.TrimSpace(s)
}

// DisplayForm is the form shown to the user: encoding repaired, whitespace
// collapsed, case preserved, diacritics untouched.
func DisplayForm(s string) string {
	s = FixCzechEncoding(s)
	s = CollapseWhitespace(s)
	return strings.TrimSpace(s)
}

// AreEquivalent reports whether a and b are byte-equal once both are
// reduced to comparisonForm.
func (n *Normalizer) AreEquivalent(a, b string) bool {
	return comparisonForm(a) == comparisonForm(b)
}

// ComparisonKey exposes comparisonForm for callers that need a stable
// equivalence key rather than a pairwise comparison, such as an index
// keyed by author+title.
func (n *Normalizer) ComparisonKey(s string) string {
	return comparisonForm(s)
}

// Similarity returns 1 - levenshtein(a_norm, b_norm)/max(len(a_norm),
// len(b_norm)), on the comparison-normalised strings. Two empty strings are
// similarity 1; one empty and one non-empty is 0.
func (n *Normalizer) Similarity(a, b string) float64 {
	an := []rune(comparisonForm(a))
	bn := []rune(comparisonForm(b))
	if len(an) == 0 && len(bn) == 0 {
		return 1
	}
	if len(an) == 0 || len(bn) == 0 {
		return 0
	}
	dist := levenshtein(an, bn)
	maxLen := len(an)
	if len(bn) > maxLen {
		maxLen = len(bn)
	}
	return 1 - float64(dist)/float64(maxLen)
}
