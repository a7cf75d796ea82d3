package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pavelvrba/bookorganizer/internal/model"
)

func folder(path string, fileCount int, totalBytes int64) model.AudiobookFolder {
	files := make([]string, fileCount)
	for i := range files {
		files[i] = path + "/file.mp3"
	}
	return model.AudiobookFolder{Path: path, AudioFiles: files, TotalAudioBytes: totalBytes}
}

func TestCompare_IneligibleWhenAuthorDiffers(t *testing.T) {
	d := New()
	a := folder("/lib/A/Book", 1, 1000)
	b := folder("/lib/B/Book", 1, 1000)
	metaA := model.BookMetadata{Author: "Karel Capek", Title: "Valka s mloky"}
	metaB := model.BookMetadata{Author: "Jules Verne", Title: "Valka s mloky"}

	_, ok := d.Compare(a, metaA, b, metaB, model.ScopeWithinSource)
	assert.False(t, ok)
}

// When the series consolidator already strips the volume marker out of
// Title into Series/SeriesNumber, two different volumes of a series can
// share an equivalent Title and Author and still pass the eligibility
// gate -- the multi-part heuristics below catch them via the folder name.

func TestCompare_RejectsDifferentRomanNumeralVolumes(t *testing.T) {
	d := New()
	a := folder("/lib/Author/Legie I", 1, 1000)
	b := folder("/lib/Author/Legie II", 1, 1000)
	metaA := model.BookMetadata{Author: "Same Author", Title: "Legie", Series: "Legie"}
	metaB := model.BookMetadata{Author: "Same Author", Title: "Legie", Series: "Legie"}

	_, ok := d.Compare(a, metaA, b, metaB, model.ScopeWithinSource)
	assert.False(t, ok)
}

func TestCompare_RejectsDifferentKeywordedVolumes(t *testing.T) {
	d := New()
	a := folder("/lib/Author/Foundation Book 1", 1, 1000)
	b := folder("/lib/Author/Foundation Book 2", 1, 1000)
	metaA := model.BookMetadata{Author: "Same Author", Title: "Foundation"}
	metaB := model.BookMetadata{Author: "Same Author", Title: "Foundation"}

	_, ok := d.Compare(a, metaA, b, metaB, model.ScopeWithinSource)
	assert.False(t, ok)
}

func TestCompare_RejectsDifferentNarrators(t *testing.T) {
	d := New()
	a := folder("/lib/Author/Book", 1, 1000)
	b := folder("/lib/Author/Book copy", 1, 1000)
	metaA := model.BookMetadata{Author: "Same Author", Title: "Same Title", Narrator: "Viktor Preiss"}
	metaB := model.BookMetadata{Author: "Same Author", Title: "Same Title", Narrator: "Jiri Labus"}

	_, ok := d.Compare(a, metaA, b, metaB, model.ScopeWithinSource)
	assert.False(t, ok)
}

func TestCompare_RejectsWhenAudioCountDiffersTooMuch(t *testing.T) {
	d := New()
	a := folder("/lib/Author/Book", 10, 1000)
	b := folder("/lib/Author/Book v2", 1, 1000)
	metaA := model.BookMetadata{Author: "Same Author", Title: "Same Title"}
	metaB := model.BookMetadata{Author: "Same Author", Title: "Same Title"}

	_, ok := d.Compare(a, metaA, b, metaB, model.ScopeWithinSource)
	assert.False(t, ok)
}

func TestCompare_IdenticalPairRecommendsKeepSource(t *testing.T) {
	d := New()
	a := folder("/lib/Author/Book", 1, 1000)
	b := folder("/lib/Author2/Book", 1, 1000)
	metaA := model.BookMetadata{Author: "Same Author", Title: "Same Title", Year: 2000}
	metaB := model.BookMetadata{Author: "Same Author", Title: "Same Title", Year: 2000}

	cand, ok := d.Compare(a, metaA, b, metaB, model.ScopeWithinSource)
	require := assert.New(t)
	require.True(ok)
	require.Equal(model.ResolutionKeepSource, cand.Recommendation)
	require.True(cand.Confidence >= 0.80)
	require.True(cand.AutoMerge())
}

func TestCompare_PartialNarratorDifferenceRecommendsKeepBoth(t *testing.T) {
	d := New()
	a := folder("/lib/Author/Book", 1, 1000)
	b := folder("/lib/Author2/Book", 1, 1000)
	metaA := model.BookMetadata{Author: "Same Author", Title: "Same Title", Narrator: "Viktor Preiss"}
	metaB := model.BookMetadata{Author: "Same Author", Title: "Same Title"}

	cand, ok := d.Compare(a, metaA, b, metaB, model.ScopeWithinSource)
	assert.True(t, ok)
	assert.Equal(t, model.ResolutionKeepBoth, cand.Recommendation)
	assert.False(t, cand.AutoMerge())
}

func TestDetectWithinSource_FindsOnePairAmongThree(t *testing.T) {
	d := New()
	folders := []model.AudiobookFolder{
		folder("/lib/A/Book", 1, 1000),
		folder("/lib/A2/Book", 1, 1000),
		folder("/lib/Other/Unrelated", 1, 1000),
	}
	metas := []model.BookMetadata{
		{Author: "Same Author", Title: "Same Title"},
		{Author: "Same Author", Title: "Same Title"},
		{Author: "Different Author", Title: "Different Title"},
	}

	cands, err := d.DetectWithinSource(folders, metas)
	assert.NoError(t, err)
	assert.Len(t, cands, 1)
	assert.Equal(t, "/lib/A/Book", cands[0].FolderA)
	assert.Equal(t, "/lib/A2/Book", cands[0].FolderB)
}
