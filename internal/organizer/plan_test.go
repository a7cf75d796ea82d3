package organizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pavelvrba/bookorganizer/internal/model"
)

func TestCanonicalFolder_PrefersNoYearSuffix(t *testing.T) {
	a := "/lib/Stephen King/The Gunslinger (2003)"
	b := "/lib/Stephen King/The Gunslinger"
	assert.Equal(t, b, canonicalFolder(a, b))
	assert.Equal(t, b, canonicalFolder(b, a))
}

func TestCanonicalFolder_PrefersShorterWhenYearTied(t *testing.T) {
	a := "/lib/Stephen King/The Gunslinger Extended Edition"
	b := "/lib/Stephen King/The Gunslinger"
	assert.Equal(t, b, canonicalFolder(a, b))
}

func TestBuildMergeMap_MapsLoserToCanonical(t *testing.T) {
	candidates := []model.DuplicationCandidate{
		{
			FolderA:        "/src/gunslinger-2003-scan",
			FolderB:        "/src/gunslinger-clean-scan",
			Confidence:     0.9,
			Recommendation: model.ResolutionKeepSource,
		},
	}
	rawTargets := map[string]string{
		"/src/gunslinger-2003-scan":  "/lib/Stephen King/The Gunslinger (2003)",
		"/src/gunslinger-clean-scan": "/lib/Stephen King/The Gunslinger",
	}
	merge := buildMergeMap(candidates, rawTargets)
	assert.Equal(t, "/src/gunslinger-clean-scan", merge["/src/gunslinger-2003-scan"])
	_, stillPresent := merge["/src/gunslinger-clean-scan"]
	assert.False(t, stillPresent)
}

func TestBuildMergeMap_SkipsLowConfidenceOrKeepBoth(t *testing.T) {
	candidates := []model.DuplicationCandidate{
		{FolderA: "/a", FolderB: "/b", Confidence: 0.5, Recommendation: model.ResolutionKeepSource},
		{FolderA: "/c", FolderB: "/d", Confidence: 0.95, Recommendation: model.ResolutionKeepBoth},
	}
	rawTargets := map[string]string{"/a": "/lib/a", "/b": "/lib/b", "/c": "/lib/c", "/d": "/lib/d"}
	merge := buildMergeMap(candidates, rawTargets)
	assert.Empty(t, merge)
}
