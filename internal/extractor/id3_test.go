package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pavelvrba/bookorganizer/internal/model"
)

func TestFixAllCaps_TriggersOnlyAboveThreshold(t *testing.T) {
	assert.Equal(t, "Legie", fixAllCaps("LEGIE"))
	assert.Equal(t, "Mrtvá schránka", fixAllCaps("Mrtvá schránka"))
}

func TestSplitNarrator_CzechSlashPrefix(t *testing.T) {
	author, narrator, ok := splitNarrator("Karel Čapek / čte Viktor Preiss", narratorArtistPattern)
	assert.True(t, ok)
	assert.Equal(t, "Karel Čapek", author)
	assert.Equal(t, "Viktor Preiss", narrator)
}

func TestSplitNarrator_NoMatch(t *testing.T) {
	_, _, ok := splitNarrator("Petr Stach", narratorArtistPattern)
	assert.False(t, ok)
}

func TestInferSeriesFromTitle_RomanNumeral(t *testing.T) {
	series, number, title, ok := inferSeriesFromTitle("LEGIE VII: Mrtvá schránka")
	assert.True(t, ok)
	assert.Equal(t, "LEGIE", series)
	assert.Equal(t, "7", number)
	assert.Equal(t, "Mrtvá schránka", title)
}

func TestConsolidateID3_ComposerIsAuthor(t *testing.T) {
	files := []model.RawTagData{
		{Album: "Legie VII: Mrtva schranka", Composer: "Andrzej Sapkowski", Artist: "Petr Stach", Year: 2018},
	}
	meta := consolidateID3(files)
	assert.Equal(t, "Andrzej Sapkowski", meta.Author)
	assert.Equal(t, "Petr Stach", meta.Narrator)
	assert.Equal(t, "Legie", meta.Series)
	assert.Equal(t, "7", meta.SeriesNumber)
	assert.Equal(t, "Mrtva schranka", meta.Title)
	assert.Equal(t, 2018, meta.Year)
}

func TestConsolidateID3_NarratorFromArtistSlash(t *testing.T) {
	files := []model.RawTagData{
		{Album: "Valka s mloky", Artist: "Karel Čapek / čte Viktor Preiss"},
	}
	meta := consolidateID3(files)
	assert.Equal(t, "Karel Čapek", meta.Author)
	assert.Equal(t, "Viktor Preiss", meta.Narrator)
}

func TestConsolidateID3_EmptyYieldsUnknownTitle(t *testing.T) {
	meta := consolidateID3(nil)
	assert.Equal(t, "Unknown Title", meta.Title)
}

func TestConsolidateID3_ModeAcrossMultipleFiles(t *testing.T) {
	files := []model.RawTagData{
		{Album: "Foundation", Year: 1990},
		{Album: "Foundation", Year: 1990},
		{Album: "Foundatoin", Year: 1991}, // typo outlier, outvoted
	}
	meta := consolidateID3(files)
	assert.Equal(t, "Foundation", meta.Title)
	assert.Equal(t, 1990, meta.Year)
}
