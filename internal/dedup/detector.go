// Package dedup implements the pairwise duplicate-audiobook detector:
// eligibility and early-reject rules, content-aware scoring, and a
// recommended resolution, per spec §4.10.
package dedup

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pavelvrba/bookorganizer/internal/model"
	"github.com/pavelvrba/bookorganizer/internal/textnorm"
)

// Detector runs the pairwise comparison spec §4.10 describes.
type Detector struct {
	norm    *textnorm.Normalizer
	content *ContentAnalyzer
}

// New returns a Detector. It carries no state beyond its helpers.
func New() *Detector {
	return &Detector{norm: textnorm.New(), content: NewContentAnalyzer()}
}

// romanToken matches a standalone roman numeral I..V (word-bounded).
var romanToken = regexp.MustCompile(`(?i)\b(I|II|III|IV|V)\b`)

// multiPartKeyword matches one of the multi-part keywords followed (within
// a few non-digit characters) by an integer.
var multiPartKeyword = regexp.MustCompile(`(?i)\b(svazek|díl|dil|část|cast|part|volume|vol|book)\b\D{0,4}(\d+)`)

// trailingInt matches an integer at the very end of the combined string.
var trailingInt = regexp.MustCompile(`(\d+)\s*$`)

func combinedLabel(folderPath string, title string) string {
	return strings.TrimSpace(filepath.Base(folderPath) + " " + title)
}

// Compare runs the full pipeline for one pair; ok is false when the pair is
// not a duplicate (ineligible or rejected early), in which case candidate
// is the zero value.
func (d *Detector) Compare(folderA model.AudiobookFolder, metaA model.BookMetadata, folderB model.AudiobookFolder, metaB model.BookMetadata, scope model.DuplicationScope) (model.DuplicationCandidate, bool) {
	if !d.norm.AreEquivalent(metaA.Author, metaB.Author) || !d.norm.AreEquivalent(metaA.Title, metaB.Title) {
		return model.DuplicationCandidate{}, false
	}

	labelA := combinedLabel(folderA.Path, metaA.Title)
	labelB := combinedLabel(folderB.Path, metaB.Title)

	if rejectMultiPart(labelA, labelB) {
		return model.DuplicationCandidate{}, false
	}
	if metaA.Narrator != "" && metaB.Narrator != "" && !d.norm.AreEquivalent(metaA.Narrator, metaB.Narrator) {
		return model.DuplicationCandidate{}, false
	}
	if countsDifferTooMuch(len(folderA.AudioFiles), len(folderB.AudioFiles)) {
		return model.DuplicationCandidate{}, false
	}

	statsA := d.content.Analyze(folderA)
	statsB := d.content.Analyze(folderB)
	durationSim := durationSimilarity(statsA.durationSeconds, statsB.durationSeconds)
	if durationSim < 0.5 {
		return model.DuplicationCandidate{}, false
	}
	sizeSim := sizeSimilarity(statsA.totalBytes, statsB.totalBytes)

	var reasons, diffs []string
	reasons = append(reasons, "author and title match")

	score := 0.6

	seriesMatch := metaA.Series != "" && metaB.Series != "" && d.norm.AreEquivalent(metaA.Series, metaB.Series)
	if seriesMatch {
		score += 0.1
		reasons = append(reasons, "series match")
	}
	seriesNumberMatch := metaA.SeriesNumber != "" && metaB.SeriesNumber != "" && metaA.SeriesNumber == metaB.SeriesNumber
	if seriesNumberMatch {
		score += 0.1
		reasons = append(reasons, "series number match")
	}

	narratorBothSet := metaA.Narrator != "" && metaB.Narrator != ""
	narratorMatch := narratorBothSet && d.norm.AreEquivalent(metaA.Narrator, metaB.Narrator)
	if narratorMatch {
		score += 0.1
		reasons = append(reasons, "narrator match")
	}
	narratorPartialDiff := metaA.Narrator != metaB.Narrator && (metaA.Narrator == "" || metaB.Narrator == "")
	if narratorPartialDiff {
		diffs = append(diffs, "narrator")
	}

	yearMatch := metaA.Year != 0 && metaA.Year == metaB.Year
	if yearMatch {
		score += 0.05
		reasons = append(reasons, "year match")
	} else if metaA.Year != 0 && metaB.Year != 0 {
		diffs = append(diffs, "year")
	}

	score += 0.15*durationSim + 0.05*sizeSim
	if score > 1.0 {
		score = 1.0
	}

	durationRatio := ratioOverMin(statsA.durationSeconds, statsB.durationSeconds)
	sizeRatio := ratioOverMin(float64(statsA.totalBytes), float64(statsB.totalBytes))
	if durationRatio > 0.5 {
		diffs = append(diffs, "duration")
	}
	if sizeRatio > 0.5 {
		diffs = append(diffs, "size")
	}

	recommendation := recommend(diffs, durationRatio, sizeRatio, statsA, statsB, folderA, folderB)

	return model.DuplicationCandidate{
		FolderA: folderA.Path, FolderB: folderB.Path,
		MetadataA: metaA, MetadataB: metaB,
		Confidence: score, Reasons: reasons, Differences: diffs,
		Recommendation: recommendation, Scope: scope,
	}, true
}

// ratioOverMin is |a-b|/min(a,b); a larger value than durationSimilarity's
// /max form when the two differ a lot relative to the smaller side, which
// is how spec §4.10 distinguishes "close enough to call a duplicate" from
// "different enough to be a different edition".
func ratioOverMin(a, b float64) float64 {
	min := a
	if b < min {
		min = b
	}
	if min <= 0 {
		return 0
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff / min
}

func recommend(diffs []string, durationRatio, sizeRatio float64, statsA, statsB contentStats, folderA, folderB model.AudiobookFolder) model.Resolution {
	for _, diff := range diffs {
		if diff == "narrator" {
			return model.ResolutionKeepBoth
		}
	}
	if durationRatio > 0.5 || sizeRatio > 0.5 {
		return model.ResolutionKeepBoth
	}
	if len(diffs) == 0 {
		return model.ResolutionKeepSource
	}
	if largerThan(statsA, folderA, statsB, folderB) {
		return model.ResolutionKeepSource
	}
	return model.ResolutionKeepTarget
}

func largerThan(statsA contentStats, folderA model.AudiobookFolder, statsB contentStats, folderB model.AudiobookFolder) bool {
	if statsA.durationSeconds != statsB.durationSeconds {
		return statsA.durationSeconds > statsB.durationSeconds
	}
	return folderA.TotalAudioBytes >= folderB.TotalAudioBytes
}

func countsDifferTooMuch(a, b int) bool {
	if a == 0 && b == 0 {
		return false
	}
	max := a
	if b > max {
		max = b
	}
	if max == 0 {
		return false
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return float64(diff)/float64(max) > 0.5
}

// rejectMultiPart applies the three multi-part-book heuristics of spec
// §4.10 against the two sides' combined "{folder name} {title}" strings.
func rejectMultiPart(labelA, labelB string) bool {
	if romanA, okA := firstRoman(labelA); okA {
		if romanB, okB := firstRoman(labelB); okB && !strings.EqualFold(romanA, romanB) {
			return true
		}
	}
	if numA, okA := firstKeywordInt(labelA); okA {
		if numB, okB := firstKeywordInt(labelB); okB && numA != numB {
			return true
		}
	}
	if numA, okA := trailingNumber(labelA); okA {
		if numB, okB := trailingNumber(labelB); okB && numA != numB {
			return true
		}
	}
	return false
}

func firstRoman(s string) (string, bool) {
	m := romanToken.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1]), true
}

func firstKeywordInt(s string) (int, bool) {
	m := multiPartKeyword.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}
	return n, true
}

func trailingNumber(s string) (int, bool) {
	m := trailingInt.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// DetectWithinSource runs Compare over every pair of the given folders and
// their already-extracted metadata, returning every eligible duplicate
// candidate found.
func (d *Detector) DetectWithinSource(folders []model.AudiobookFolder, metas []model.BookMetadata) ([]model.DuplicationCandidate, error) {
	if len(folders) != len(metas) {
		return nil, fmt.Errorf("dedup: folders/metas length mismatch: %d vs %d", len(folders), len(metas))
	}
	var out []model.DuplicationCandidate
	for i := 0; i < len(folders); i++ {
		for j := i + 1; j < len(folders); j++ {
			if cand, ok := d.Compare(folders[i], metas[i], folders[j], metas[j], model.ScopeWithinSource); ok {
				out = append(out, cand)
			}
		}
	}
	return out, nil
}
