package extractor

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pavelvrba/bookorganizer/internal/filenameparse"
	"github.com/pavelvrba/bookorganizer/internal/model"
)

var titleCaser = cases.Title(language.Und)

// fixAllCaps title-cases a field that's at least 70% uppercase letters
// (letters-only denominator), per spec §4.3's ALL-CAPS repair rule.
func fixAllCaps(s string) string {
	letters, upper := 0, 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 || float64(upper)/float64(letters) < 0.70 {
		return s
	}
	return titleCaser.String(strings.ToLower(s))
}

// narratorArtistPattern matches the Czech narrator-prefix marker inside an
// Artist tag: a '/' or ';' separator followed by one of the narrator verbs.
var narratorArtistPattern = regexp.MustCompile(`(?i)[/;]\s*(?:cte|čte|čtou|ctou|ucinkuji|účinkují|účinkuje)\.?\s*`)

// narratorCommentPattern is the looser variant used against the Comment
// field, which may carry the keyword with a colon ("čte:") instead of a
// leading separator.
var narratorCommentPattern = regexp.MustCompile(`(?i)(?:cte|čte|čtou|ctou|ucinkuji|účinkují|účinkuje)\s*:?\s*`)

// splitNarrator finds pattern in s and splits the text before it (author)
// from the text after it (narrator), trimming trailing punctuation off the
// narrator per spec §4.3.
func splitNarrator(s string, pattern *regexp.Regexp) (author, narrator string, ok bool) {
	loc := pattern.FindStringIndex(s)
	if loc == nil {
		return "", "", false
	}
	author = strings.TrimSpace(s[:loc[0]])
	narrator = strings.TrimRight(strings.TrimSpace(s[loc[1]:]), ".,; ")
	return author, narrator, narrator != ""
}

var reSeriesNumTitle = regexp.MustCompile(`(?i)^(.+?)\s+(\d+|[ivxlcdm]+)\s*[:\-–—]\s*(.+)$`)
var reSeriesSingleWord = regexp.MustCompile(`(?i)^(\S+)\s*[:\-–—]\s*(.+)$`)

// inferSeriesFromTitle applies spec §4.3's series-from-title regexes,
// normalising a matched roman numeral to arabic via filenameparse.
func inferSeriesFromTitle(title string) (series, number, remaining string, ok bool) {
	if m := reSeriesNumTitle.FindStringSubmatch(title); m != nil {
		num := m[2]
		if arabic, isRoman := filenameparse.RomanToArabic(num); isRoman {
			num = arabic
		}
		return strings.TrimSpace(m[1]), num, strings.TrimSpace(m[3]), true
	}
	if m := reSeriesSingleWord.FindStringSubmatch(title); m != nil {
		return strings.TrimSpace(m[1]), "", strings.TrimSpace(m[2]), true
	}
	return "", "", title, false
}

// consolidateID3 fuses per-file RawTagData across one audiobook folder into
// a single "ID3Tags" BookMetadata candidate, per spec §4.3.
func consolidateID3(files []model.RawTagData) model.BookMetadata {
	meta := model.BookMetadata{Source: "ID3Tags"}
	if len(files) == 0 {
		meta.Title = "Unknown Title"
		return meta
	}

	albums := make([]string, 0, len(files))
	genres := make([]string, 0, len(files))
	years := make([]int, 0, len(files))
	artists := make([]string, 0, len(files))
	var composer, comment string
	for _, f := range files {
		albums = append(albums, f.Album)
		genres = append(genres, f.Genre)
		years = append(years, f.Year)
		artists = append(artists, f.Artist)
		if composer == "" {
			composer = f.Composer
		}
		if comment == "" {
			comment = f.Comment
		}
	}

	title := modeString(albums)
	if title == "" {
		title = "Unknown Title"
	}
	meta.Title = title
	meta.Genre = modeString(genres)
	meta.Year = modeYear(years, time.Now().Year()+1)

	artist := modeString(artists)
	switch {
	case composer != "":
		meta.Author = composer
		meta.Narrator = artist
	default:
		if a, n, ok := splitNarrator(artist, narratorArtistPattern); ok {
			meta.Author, meta.Narrator = a, n
		} else if comment != "" {
			if _, n, ok := splitNarrator(comment, narratorCommentPattern); ok {
				meta.Author, meta.Narrator = artist, n
			} else {
				meta.Author = artist
			}
		} else {
			meta.Author = artist
		}
	}

	if series, number, remainder, ok := inferSeriesFromTitle(meta.Title); ok {
		meta.Series = series
		meta.SeriesNumber = number
		meta.Title = remainder
	}

	meta.Title = fixAllCaps(meta.Title)
	meta.Series = fixAllCaps(meta.Series)
	meta.Author = fixAllCaps(meta.Author)
	meta.Narrator = fixAllCaps(meta.Narrator)
	meta.Genre = fixAllCaps(meta.Genre)

	meta.Confidence = id3Confidence(meta)
	return meta
}

func id3Confidence(m model.BookMetadata) float64 {
	c := 0.0
	if m.Title != "" && m.Title != "Unknown Title" {
		c += 0.4
	}
	if m.Author != "" {
		c += 0.3
	}
	if m.Narrator != "" {
		c += 0.1
	}
	if m.Genre != "" {
		c += 0.1
	}
	if m.Year >= 1900 {
		c += 0.1
	}
	return c
}

// modeString returns the most frequent non-empty value, ties broken by
// first occurrence order.
func modeString(values []string) string {
	counts := map[string]int{}
	var order []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	best, bestCount := "", 0
	for _, v := range order {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

// modeYear is modeString's integer counterpart, restricted to years that
// pass the 1900..maxYear plausibility window.
func modeYear(years []int, maxYear int) int {
	counts := map[int]int{}
	var order []int
	for _, y := range years {
		if y == 0 || y < 1900 || y > maxYear {
			continue
		}
		if counts[y] == 0 {
			order = append(order, y)
		}
		counts[y]++
	}
	best, bestCount := 0, 0
	for _, y := range order {
		if counts[y] > bestCount {
			best, bestCount = y, counts[y]
		}
	}
	return best
}
