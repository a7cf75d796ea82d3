package pathgen

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pavelvrba/bookorganizer/internal/textnorm"
)

var titleCaser = cases.Title(language.Und)

// NormalizeAuthor applies the author-normalisation pipeline: encoding
// repair, first-of-multiple (split on ';'), "Last, First" -> "First Last",
// then title-casing. An empty result becomes "Unknown Author".
func NormalizeAuthor(author string) string {
	author = textnorm.FixCzechEncoding(author)
	if idx := strings.Index(author, ";"); idx >= 0 {
		author = author[:idx]
	}
	author = strings.TrimSpace(author)

	if idx := strings.Index(author, ","); idx >= 0 {
		last := strings.TrimSpace(author[:idx])
		first := strings.TrimSpace(author[idx+1:])
		if last != "" && first != "" {
			author = first + " " + last
		}
	}

	author = strings.ToLower(author)
	author = titleCaser.String(author)
	author = strings.TrimSpace(author)

	if author == "" {
		return "Unknown Author"
	}
	return author
}
