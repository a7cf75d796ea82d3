// Package extractor orchestrates metadata-candidate extraction for one
// audiobook folder: cached/fresh ID3 tag reads, filename and
// folder-hierarchy heuristics, and the hierarchical sidecar cascade, fed
// into the consolidator and finished with the manual-sidecar overlay and
// the generic-title fallback, per spec §4.3.
package extractor

import (
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/pavelvrba/bookorganizer/internal/consolidator"
	"github.com/pavelvrba/bookorganizer/internal/filenameparse"
	"github.com/pavelvrba/bookorganizer/internal/model"
	"github.com/pavelvrba/bookorganizer/internal/namedict"
	"github.com/pavelvrba/bookorganizer/internal/sidecar"
	"github.com/pavelvrba/bookorganizer/internal/tagcache"
)

// genericTitles triggers the folder-basename fallback of spec §4.3 step 10.
var genericTitles = map[string]bool{
	"Unknown Title": true, "Audiobook": true, "Audiobooks": true,
}

// Extractor runs the metadata-candidate pipeline for one audiobook folder.
type Extractor struct {
	log          *zap.Logger
	consolidator *consolidator.Consolidator
	filenames    *filenameparse.Parser
}

// New builds an Extractor. dict may be nil (no name-dictionary lookups);
// a nil logger is replaced with zap's no-op logger.
func New(log *zap.Logger, dict *namedict.Dictionary) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{
		log:          log,
		consolidator: consolidator.New(dict),
		filenames:    filenameparse.New(),
	}
}

// Extract runs the full pipeline, reading audio tags fresh on a cache miss.
// sourceRoot may be empty, disabling the hierarchy-aware features (spec
// §4.3's "if source_root given" branches).
func (e *Extractor) Extract(folder model.AudiobookFolder, sourceRoot string) model.ConsolidatedMetadata {
	return e.run(folder, sourceRoot, false)
}

// ExtractCachedOnly runs the same pipeline but never invokes the tag
// reader: a cache miss simply contributes nothing to the ID3 candidate.
func (e *Extractor) ExtractCachedOnly(folder model.AudiobookFolder, sourceRoot string) model.ConsolidatedMetadata {
	return e.run(folder, sourceRoot, true)
}

func (e *Extractor) run(folder model.AudiobookFolder, sourceRoot string, cachedOnly bool) model.ConsolidatedMetadata {
	var chain []*model.HierarchicalMetadata
	if sourceRoot != "" {
		chain = sidecar.BuildChain(sourceRoot, folder.Path, e.log)
	}
	immediate, _ := sidecar.Load(folder.Path, e.log)

	rawTags := e.collectTags(folder, cachedOnly)
	id3Candidate := consolidateID3(rawTags)

	relForNames := folder.Path
	if sourceRoot != "" {
		if rel, err := filepath.Rel(sourceRoot, folder.Path); err == nil {
			relForNames = rel
		}
	}
	filenameCandidate := e.filenames.Parse(relForNames)

	var hierarchyCandidate model.BookMetadata
	if sourceRoot != "" {
		hr := filenameparse.AnalyzeHierarchy(relForNames)
		hierarchyCandidate = model.BookMetadata{
			Author: hr.Author, Series: hr.Series, Title: hr.Title,
			Narrator: hr.Narrator, Confidence: hr.Confidence, Source: "FolderHierarchy",
		}
	}

	var sidecarCandidate model.BookMetadata
	if len(chain) > 0 {
		sidecarCandidate = overrideToCandidate(sidecar.Evaluate(chain), "HierarchicalMetadataJson", 0.95)
	}

	var candidates []model.BookMetadata
	for _, c := range []model.BookMetadata{sidecarCandidate, hierarchyCandidate, id3Candidate, filenameCandidate} {
		if isNonEmpty(c) {
			candidates = append(candidates, c)
		}
	}

	consolidated := e.consolidator.Consolidate(candidates)

	if immediate != nil && immediate.Source == "manual" {
		consolidated = applyManualOverride(consolidated, immediate)
		consolidated.OverallConfidence = consolidator.OverallConfidence(consolidated)
		consolidated.Sources = consolidator.CollectSources(consolidated)
	}

	if genericTitles[consolidated.Title.Value] {
		consolidated.Title.Value = filepath.Base(folder.Path)
	}

	return consolidated
}

// collectTags resolves each audio file's RawTagData from the tag cache,
// falling back to a fresh read on a miss (unless cachedOnly). The cache is
// rewritten once, at the end, if any file forced a fresh read.
func (e *Extractor) collectTags(folder model.AudiobookFolder, cachedOnly bool) []model.RawTagData {
	cache, _ := tagcache.Load(folder.Path, e.log)
	var tags []model.RawTagData
	dirty := false
	for _, file := range folder.AudioFiles {
		rel, err := filepath.Rel(folder.Path, file)
		if err != nil {
			rel = filepath.Base(file)
		}
		if cached, ok := cache.Lookup(rel); ok {
			tags = append(tags, cached)
			continue
		}
		if cachedOnly {
			continue
		}
		t, err := readTags(file)
		if err != nil {
			e.log.Warn("extractor: skipping unreadable audio file", zap.String("path", file), zap.Error(err))
			continue
		}
		cache.Put(rel, t)
		tags = append(tags, t)
		dirty = true
	}
	if dirty {
		cache.Save()
	}
	return tags
}

func overrideToCandidate(o *model.MetadataOverride, source string, confidence float64) model.BookMetadata {
	if o == nil {
		return model.BookMetadata{}
	}
	m := model.BookMetadata{Source: source, Confidence: confidence}
	if o.Title != nil {
		m.Title = *o.Title
	}
	if o.Author != nil {
		m.Author = *o.Author
	}
	if o.Series != nil {
		m.Series = *o.Series
	}
	if o.SeriesNumber != nil {
		m.SeriesNumber = *o.SeriesNumber
	}
	if o.Narrator != nil {
		m.Narrator = *o.Narrator
	}
	if o.Year != nil {
		m.Year = *o.Year
	}
	if o.DiscNumber != nil {
		m.DiscNumber = *o.DiscNumber
	}
	if o.Genre != nil {
		m.Genre = *o.Genre
	}
	if o.Description != nil {
		m.Description = *o.Description
	}
	if o.Language != nil {
		m.Language = *o.Language
	}
	if o.Comment != nil {
		m.Comment = *o.Comment
	}
	return m
}

func isNonEmpty(m model.BookMetadata) bool {
	return m.Title != "" || m.Author != "" || m.Series != "" || m.SeriesNumber != "" ||
		m.Narrator != "" || m.Year != 0 || m.Genre != "" || m.Description != ""
}

// applyManualOverride overwrites consolidated's fields with o's non-null
// values, at confidence 1.0 and source "metadata.json", per spec §4.3
// step 9: a manual immediate sidecar is authoritative over consolidation.
func applyManualOverride(consolidated model.ConsolidatedMetadata, o *model.MetadataOverride) model.ConsolidatedMetadata {
	setStr := func(f *model.ConsolidatedField, v *string) {
		if v != nil && *v != "" {
			*f = model.ConsolidatedField{Value: *v, Confidence: 1.0, Source: "metadata.json"}
		}
	}
	setInt := func(f *model.ConsolidatedField, v *int) {
		if v != nil {
			*f = model.ConsolidatedField{Value: strconv.Itoa(*v), Confidence: 1.0, Source: "metadata.json"}
		}
	}
	setStr(&consolidated.Title, o.Title)
	setStr(&consolidated.Author, o.Author)
	setStr(&consolidated.Series, o.Series)
	setStr(&consolidated.SeriesNumber, o.SeriesNumber)
	setStr(&consolidated.Narrator, o.Narrator)
	setInt(&consolidated.Year, o.Year)
	setInt(&consolidated.DiscNumber, o.DiscNumber)
	setStr(&consolidated.Genre, o.Genre)
	setStr(&consolidated.Description, o.Description)
	return consolidated
}
