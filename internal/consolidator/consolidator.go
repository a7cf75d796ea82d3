// Package consolidator fuses the per-source metadata candidates one
// audiobook produces (hierarchical sidecar, folder hierarchy, ID3 tags,
// filename) into a single ConsolidatedMetadata, per spec §4.4: a weighted
// argmax per field, an agreement bonus for corroborating candidates, and a
// weighted-average overall confidence.
package consolidator

import (
	"strconv"
	"strings"
	"time"

	"github.com/pavelvrba/bookorganizer/internal/model"
	"github.com/pavelvrba/bookorganizer/internal/namedict"
	"github.com/pavelvrba/bookorganizer/internal/textnorm"
)

// Consolidator holds the (optional) name dictionary used to canonicalise
// Author/Narrator after their field is selected.
type Consolidator struct {
	norm *textnorm.Normalizer
	dict *namedict.Dictionary
}

// New builds a Consolidator. dict may be nil.
func New(dict *namedict.Dictionary) *Consolidator {
	return &Consolidator{norm: textnorm.New(), dict: dict}
}

// sourceWeight is the fixed per-source-label weight table spec §4.4 names.
func sourceWeight(source string) float64 {
	switch source {
	case "HierarchicalMetadataJson":
		return 2.0
	case "ID3Tags":
		return 1.0
	case "FilenameParser":
		return 0.6
	}
	if strings.Contains(source, "Folder") {
		return 0.4
	}
	return 0.5
}

// Consolidate fuses candidates, field by field, into a ConsolidatedMetadata.
func (c *Consolidator) Consolidate(candidates []model.BookMetadata) model.ConsolidatedMetadata {
	var out model.ConsolidatedMetadata

	out.Title = c.consolidateString(candidates, func(m model.BookMetadata) string { return m.Title })
	out.Series = c.consolidateString(candidates, func(m model.BookMetadata) string { return m.Series })
	out.SeriesNumber = c.consolidateString(candidates, func(m model.BookMetadata) string { return m.SeriesNumber })
	out.Genre = c.consolidateString(candidates, func(m model.BookMetadata) string { return m.Genre })
	out.Description = c.consolidateString(candidates, func(m model.BookMetadata) string { return m.Description })

	out.Author = c.applyNameDict(c.consolidateString(candidates, func(m model.BookMetadata) string { return m.Author }))
	out.Narrator = c.applyNameDict(c.consolidateString(candidates, func(m model.BookMetadata) string { return m.Narrator }))

	out.Year = consolidateYear(candidates)
	out.DiscNumber = consolidateDisc(candidates)

	out.OverallConfidence = OverallConfidence(out)
	out.Sources = CollectSources(out)
	return out
}

func (c *Consolidator) applyNameDict(f model.ConsolidatedField) model.ConsolidatedField {
	if f.Value == "" {
		return f
	}
	v := f.Value
	if c.dict != nil {
		v = c.dict.Apply(v)
	}
	f.Value = textnorm.DisplayForm(v)
	return f
}

type stringCandidate struct {
	value      string
	confidence float64
	weight     float64
	source     string
}

func (c *Consolidator) consolidateString(candidates []model.BookMetadata, get func(model.BookMetadata) string) model.ConsolidatedField {
	var entries []stringCandidate
	for _, cand := range candidates {
		v := strings.TrimSpace(get(cand))
		if v == "" {
			continue
		}
		entries = append(entries, stringCandidate{
			value: v, confidence: cand.Confidence, weight: sourceWeight(cand.Source), source: cand.Source,
		})
	}
	if len(entries) == 0 {
		return model.ConsolidatedField{}
	}

	best := entries[0]
	bestScore := best.weight * best.confidence
	for _, e := range entries[1:] {
		score := e.weight * e.confidence
		if score > bestScore || (score == bestScore && len(e.value) > len(best.value)) {
			best, bestScore = e, score
		}
	}

	agree := 0
	for _, e := range entries {
		if c.norm.AreEquivalent(e.value, best.value) {
			agree++
		}
	}

	return model.ConsolidatedField{Value: best.value, Confidence: capConfidence(bestScore + 0.1*float64(agree-1)), Source: best.source}
}

type yearCandidate struct {
	year             int
	confidence, weight float64
	source           string
}

func consolidateYear(candidates []model.BookMetadata) model.ConsolidatedField {
	maxYear := time.Now().Year() + 1
	var entries []yearCandidate
	for _, cand := range candidates {
		if cand.Year < 1900 || cand.Year > maxYear {
			continue
		}
		entries = append(entries, yearCandidate{cand.Year, cand.Confidence, sourceWeight(cand.Source), cand.Source})
	}
	if len(entries) == 0 {
		return model.ConsolidatedField{}
	}

	best := entries[0]
	bestScore := best.weight * best.confidence
	for _, e := range entries[1:] {
		score := e.weight * e.confidence
		if score > bestScore {
			best, bestScore = e, score
		}
	}

	agree := 0
	for _, e := range entries {
		if e.year == best.year {
			agree++
		}
	}

	return model.ConsolidatedField{
		Value:      strconv.Itoa(best.year),
		Confidence: capConfidence(bestScore + 0.1*float64(agree-1)),
		Source:     best.source,
	}
}

// consolidateDisc takes the first non-null disc number from the
// highest-weighted contributing source, per spec §4.4.
func consolidateDisc(candidates []model.BookMetadata) model.ConsolidatedField {
	var best *model.BookMetadata
	bestWeight := -1.0
	for i := range candidates {
		if candidates[i].DiscNumber == 0 {
			continue
		}
		w := sourceWeight(candidates[i].Source)
		if w > bestWeight {
			bestWeight = w
			best = &candidates[i]
		}
	}
	if best == nil {
		return model.ConsolidatedField{}
	}
	return model.ConsolidatedField{Value: strconv.Itoa(best.DiscNumber), Confidence: best.Confidence, Source: best.Source}
}

func capConfidence(c float64) float64 {
	if c > 1.0 {
		return 1.0
	}
	if c < 0 {
		return 0
	}
	return c
}

// OverallConfidence computes the weighted average of per-field confidences
// spec §4.4 defines; fields at zero confidence don't contribute to either
// the numerator or the denominator.
func OverallConfidence(m model.ConsolidatedMetadata) float64 {
	weighted := []struct {
		weight, confidence float64
	}{
		{0.30, m.Title.Confidence}, {0.25, m.Author.Confidence}, {0.15, m.Series.Confidence},
		{0.10, m.SeriesNumber.Confidence}, {0.10, m.Narrator.Confidence}, {0.05, m.Year.Confidence},
		{0.03, m.Genre.Confidence}, {0.02, m.Description.Confidence},
	}
	var sum, total float64
	for _, f := range weighted {
		if f.confidence <= 0 {
			continue
		}
		sum += f.weight * f.confidence
		total += f.weight
	}
	if total == 0 {
		return 0
	}
	return sum / total
}

// CollectSources returns the deduped, stable-order union of every
// contributing field's source label.
func CollectSources(m model.ConsolidatedMetadata) []string {
	fields := []model.ConsolidatedField{
		m.Title, m.Author, m.Series, m.SeriesNumber, m.Narrator, m.Year, m.Genre, m.Description, m.DiscNumber,
	}
	seen := map[string]bool{}
	var out []string
	for _, f := range fields {
		if f.Source == "" || f.Value == "" || seen[f.Source] {
			continue
		}
		seen[f.Source] = true
		out = append(out, f.Source)
	}
	return out
}
