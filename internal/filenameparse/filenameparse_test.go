package filenameparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRomanToArabic(t *testing.T) {
	n, ok := RomanToArabic("VII")
	assert.True(t, ok)
	assert.Equal(t, "7", n)

	_, ok = RomanToArabic("not roman")
	assert.False(t, ok)
}

func TestAnalyzeHierarchy(t *testing.T) {
	path := "src/King Stephen/Temna vez/1 - Pistolnik"
	r := AnalyzeHierarchy(path)
	assert.Equal(t, "King Stephen", r.Author)
	assert.Greater(t, r.Confidence, 0.0)
}

func TestFilenameParser_SeriesTitle(t *testing.T) {
	p := New()
	meta := p.Parse("Legie VII - Mrtva schranka")
	assert.Equal(t, "Legie", meta.Series)
	assert.Equal(t, "7", meta.SeriesNumber)
	assert.Equal(t, "Mrtva schranka", meta.Title)
}

func TestFilenameParser_PlainTitle(t *testing.T) {
	p := New()
	meta := p.Parse("Mrtva schranka.mp3")
	assert.Equal(t, "Mrtva schranka", meta.Title)
}

func TestExtractSeriesNumber(t *testing.T) {
	n, ok := ExtractSeriesNumber("05.1")
	assert.True(t, ok)
	assert.Equal(t, 5, n)
}
