// Package textnorm repairs mis-decoded Czech text, strips diacritics, and
// compares strings the way the rest of the organizer needs: equivalence for
// consolidation agreement bonuses and deduplication eligibility, similarity
// for duration/title scoring.
package textnorm

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// misencodedSentinels are the Latin-1 glyphs that appear when a
// Windows-1250 Czech byte stream gets misread as Latin-1 (0x8A/0x8E/0x9A/
// 0x9D/0x9E have no Latin-1 printable mapping and surface as C1 controls).
var misencodedSentinels = []rune{
	'è', 'ì', 'ï', 'ò', 'ø', 'ù', 'È', 'Ì', 'Ï', 'Ò', 'Ø', 'Ù',
	0x008A, 0x008E, 0x009A, 0x009D, 0x009E,
}

// czechSpecific are letters that only occur in a correctly Windows-1250- or
// UTF-8-decoded Czech string; their presence means the text is already fine.
var czechSpecific = []rune{
	'č', 'ď', 'ě', 'ň', 'ř', 'š', 'ť', 'ů', 'ž',
	'Č', 'Ď', 'Ě', 'Ň', 'Ř', 'Š', 'Ť', 'Ů', 'Ž',
}

func containsAny(s string, runes []rune) bool {
	for _, r := range runes {
		if strings.ContainsRune(s, r) {
			return true
		}
	}
	return false
}

// FixCzechEncoding repairs a string that looks like Windows-1250 Czech text
// which got decoded as Latin-1. It triggers only when a misencoding
// sentinel is present and no correctly-encoded Czech letter is present, and
// adopts the repaired text only if the repair actually produced a Czech
// letter — otherwise the input is returned unchanged.
func FixCzechEncoding(s string) string {
	if s == "" {
		return s
	}
	if !containsAny(s, misencodedSentinels) || containsAny(s, czechSpecific) {
		return s
	}

	raw := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			// Not representable as a Latin-1 byte; this wasn't a Latin-1
			// misdecoding of Windows-1250 after all.
			return s
		}
		raw = append(raw, byte(r))
	}

	decoded, err := charmap.Windows1250.NewDecoder().Bytes(raw)
	if err != nil {
		return s
	}
	repaired := string(decoded)
	if containsAny(repaired, czechSpecific) {
		return repaired
	}
	return s
}
