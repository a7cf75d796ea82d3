package filenameparse

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pavelvrba/bookorganizer/internal/model"
)

var reFilenameSeriesTitle = regexp.MustCompile(`(?i)^(.+?)\s+(\d+|[ivxlcdm]+)\s*[:\-–—]\s*(.+)$`)
var reFilenameFallback = regexp.MustCompile(`^(\S+)\s*[:\-–—]\s*(.+)$`)

// Parser turns a single folder (or file) name, or a source-relative path
// to it, into a "FilenameParser" BookMetadata candidate.
type Parser struct{}

// New returns a Parser. It carries no state.
func New() *Parser { return &Parser{} }

// Parse extracts a book-title (and series, when the name shape includes
// one) candidate from path's base name.
func (p *Parser) Parse(path string) model.BookMetadata {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.TrimSpace(name)

	meta := model.BookMetadata{Source: "FilenameParser"}

	if m := reFilenameSeriesTitle.FindStringSubmatch(name); m != nil {
		series := strings.TrimSpace(m[1])
		num := m[2]
		if arabic, ok := RomanToArabic(num); ok {
			num = arabic
		}
		meta.Series = series
		meta.SeriesNumber = num
		meta.Title = strings.TrimSpace(m[3])
		meta.Confidence = 0.6
		return meta
	}

	if m := reFilenameFallback.FindStringSubmatch(name); m != nil {
		meta.Series = strings.TrimSpace(m[1])
		meta.Title = strings.TrimSpace(m[2])
		meta.Confidence = 0.4
		return meta
	}

	meta.Title = name
	if name != "" {
		meta.Confidence = 0.3
	}
	return meta
}
