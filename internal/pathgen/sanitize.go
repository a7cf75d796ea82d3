// Package pathgen synthesises the canonical target path for an audiobook
// from consolidated metadata: {root}/{author}[/{series}]/{book_leaf},
// subject to sanitisation, diacritics policy, and length limits.
package pathgen

import (
	"regexp"
	"strings"

	"github.com/pavelvrba/bookorganizer/internal/textnorm"
)

// osInvalidChars covers the union of Windows- and POSIX-reserved filename
// characters; the generator targets a path that's valid everywhere rather
// than branching on the current OS the way the teacher's SanitizePath does,
// since a synthesised library path may later be read back on another OS.
var osInvalidChars = []string{"<", ">", ":", "\"", "/", "\\", "|", "?", "*", "`"}

var multiSpaceOrUnderscore = regexp.MustCompile(`[ _]{2,}`)

// replacements are applied before the generic invalid-char-to-underscore
// pass, per spec: specific substitutions read better than a blanket "_".
var replacements = []struct {
	from, to string
}{
	{":", " -"},
	{"?", ""},
	{"*", ""},
	{"\"", "'"},
	{"<", "("},
	{">", ")"},
	{"|", "-"},
}

// SanitizeComponent applies the path-component sanitisation rules: specific
// substitutions, blanket invalid-char replacement, trim, and whitespace/
// underscore run collapsing. An empty result becomes "Unknown".
func SanitizeComponent(s string) string {
	s = strings.TrimSpace(s)
	for _, r := range replacements {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	for _, c := range osInvalidChars {
		s = strings.ReplaceAll(s, c, "_")
	}
	s = strings.Trim(s, ". ")
	s = multiSpaceOrUnderscore.ReplaceAllStringFunc(s, func(run string) string {
		return string(run[0])
	})
	if s == "" {
		return "Unknown"
	}
	return s
}

// ApplyDiacriticsPolicy strips diacritics from s unless preserveDiacritics
// is set, matching PathGenerator's preserve_diacritics option.
func ApplyDiacriticsPolicy(s string, preserveDiacritics bool) string {
	if preserveDiacritics {
		return s
	}
	return textnorm.RemoveDiacritics(s)
}
