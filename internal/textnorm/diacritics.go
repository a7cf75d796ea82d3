package textnorm

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// RemoveDiacritics decomposes s (NFD), drops every non-spacing mark, and
// recomposes (NFC) so accented Latin letters fold to their base letter
// while non-Latin text is left otherwise intact.
func RemoveDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	stripped := make([]rune, 0, len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		stripped = append(stripped, r)
	}
	return norm.NFC.String(string(stripped))
}
