package model

import "time"

// AudiobookFolder is a directory the scanner has judged to represent one
// book: audio files directly inside it, optionally aggregated with audio
// found under recognised "Disc N" subfolders.
type AudiobookFolder struct {
	Path            string   // absolute, canonicalised
	AudioFiles      []string // absolute paths, deterministic enumeration order
	OtherFiles      []string // absolute paths of non-audio files at the same levels
	TotalAudioBytes int64
	DiscSubfolders  []string // names only, sorted lexicographically case-insensitive; empty if single-disc
}

// IsMultiDisc reports whether this folder aggregates one or more disc
// subfolders.
func (f *AudiobookFolder) IsMultiDisc() bool {
	return len(f.DiscSubfolders) > 0
}

// RawTagData is what a single audio file's tags yield, prior to any
// cross-file or cross-source consolidation.
type RawTagData struct {
	Title        string
	Album        string
	Artist       string
	AlbumArtist  string
	Composer     string
	Genre        string
	Year         int // 0 = unknown
	Comment      string
	Duration     float64 // seconds; 0 if not determined
	Bitrate      int     // kbps; 0 if not determined
	Performers   []string
}

// BookMetadata is a single candidate (or the final, consolidated) record
// describing one audiobook.
type BookMetadata struct {
	Title        string
	Author       string
	Series       string
	SeriesNumber string // as extracted; pathgen.BookLeaf zero-pads it when it parses as an integer
	Narrator     string
	Year         int
	DiscNumber   int
	Genre        string
	Description  string
	Language     string
	Comment      string
	Confidence   float64
	Source       string
}

// FieldValue is one (value, confidence, source) candidate for a single
// field, the common shape every metadata source produces for the
// consolidator (spec §9 "Multiple metadata-source polymorphism").
type FieldValue struct {
	Value      string
	Confidence float64
	Source     string
}

// ConsolidatedField mirrors FieldValue but is what the consolidator picked
// as the winner for one field, alongside its weight-adjusted confidence.
type ConsolidatedField struct {
	Value      string
	Confidence float64
	Source     string
}

// ConsolidatedMetadata is the per-field fused output of MetadataConsolidator.
type ConsolidatedMetadata struct {
	Title        ConsolidatedField
	Author       ConsolidatedField
	Series       ConsolidatedField
	SeriesNumber ConsolidatedField
	Narrator     ConsolidatedField
	Year         ConsolidatedField
	Genre        ConsolidatedField
	Description  ConsolidatedField
	DiscNumber   ConsolidatedField

	OverallConfidence float64
	Sources           []string // deduped union, stable order
}

// ToBookMetadata flattens a ConsolidatedMetadata into the simpler
// BookMetadata shape PathGenerator and dedup operate on.
func (c *ConsolidatedMetadata) ToBookMetadata() BookMetadata {
	year := 0
	if c.Year.Value != "" {
		year = atoiOrZero(c.Year.Value)
	}
	disc := 0
	if c.DiscNumber.Value != "" {
		disc = atoiOrZero(c.DiscNumber.Value)
	}
	return BookMetadata{
		Title:        c.Title.Value,
		Author:       c.Author.Value,
		Series:       c.Series.Value,
		SeriesNumber: c.SeriesNumber.Value,
		Narrator:     c.Narrator.Value,
		Year:         year,
		DiscNumber:   disc,
		Genre:        c.Genre.Value,
		Description:  c.Description.Value,
		Confidence:   c.OverallConfidence,
		Source:       joinSources(c.Sources),
	}
}

func atoiOrZero(s string) int {
	n := 0
	neg := false
	for i, r := range s {
		if i == 0 && r == '-' {
			neg = true
			continue
		}
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	if neg {
		n = -n
	}
	return n
}

func joinSources(sources []string) string {
	out := ""
	for i, s := range sources {
		if i > 0 {
			out += ","
		}
		out += s
	}
	return out
}

// MetadataOverride is the shape of a sidecar file (bookinfo.json or
// metadata.json). Every field is optional; a missing field means "no
// opinion" for that level of the hierarchy cascade.
type MetadataOverride struct {
	Title        *string
	Author       *string
	Series       *string
	SeriesNumber *string
	Narrator     *string
	Year         *int
	DiscNumber   *int
	Genre        *string
	Description  *string
	Language     *string
	Comment      *string
	Source       string // "manual" locks this sidecar against automated overwrite
}

// IsManual reports whether this override is authoritative against
// non-manual descendants in the hierarchy cascade.
func (m *MetadataOverride) IsManual() bool {
	return m != nil && m.Source == "manual"
}

// HierarchicalMetadata is one level of the author→series→book sidecar
// chain, built bottom-up by the sidecar processor.
type HierarchicalMetadata struct {
	FolderPath string
	Level      int // 0 = author, 1 = series, 2 = book (clamped)
	Override   *MetadataOverride
	Parent     *HierarchicalMetadata
}

// TagCacheEntry is one cached extraction result, keyed by RelativePath.
type TagCacheEntry struct {
	RelativePath    string
	LastModifiedUTC time.Time
	SizeBytes       int64
	Tags            RawTagData
}

// Mp3TagCache is the on-disk sidecar (mp3tags.json) memoising tag
// extraction for one audiobook folder.
type Mp3TagCache struct {
	Version            string
	ScannedAtUTC       time.Time
	OriginalFolderPath string
	Entries            []TagCacheEntry
}

// Resolution is the recommended action for a duplication candidate.
type Resolution string

const (
	ResolutionKeepSource Resolution = "keep_source"
	ResolutionKeepTarget Resolution = "keep_target"
	ResolutionKeepBoth   Resolution = "keep_both"
	ResolutionSkip       Resolution = "skip"
)

// DuplicationScope says whether a candidate pair was found within the same
// source scan, or between a source folder and the existing library.
type DuplicationScope string

const (
	ScopeWithinSource       DuplicationScope = "within_source"
	ScopeWithExistingLibrary DuplicationScope = "with_existing_library"
)

// DuplicationCandidate is one pairwise comparison result from the
// deduplication detector.
type DuplicationCandidate struct {
	FolderA, FolderB     string
	MetadataA, MetadataB BookMetadata
	Confidence           float64
	Reasons              []string
	Differences          []string
	Recommendation       Resolution
	Scope                DuplicationScope
}

// AutoMerge reports whether this candidate can be fused without user
// interaction: confidence >= 0.80 and the recommendation isn't KeepBoth or
// Skip.
func (d *DuplicationCandidate) AutoMerge() bool {
	if d.Confidence < 0.80 {
		return false
	}
	return d.Recommendation != ResolutionKeepBoth && d.Recommendation != ResolutionSkip
}

// OperationType is one of the four file-operation strategies.
type OperationType string

const (
	OpCopy         OperationType = "copy"
	OpMove         OperationType = "move"
	OpHardLink     OperationType = "hard_link"
	OpSymbolicLink OperationType = "symbolic_link"
)

// OrganizationPlan is the per-audiobook unit of work built by the
// organizer: where it came from, its resolved metadata, where it's going,
// and how.
type OrganizationPlan struct {
	SourceFolder string
	Metadata     ConsolidatedMetadata
	TargetPath   string
	Operation    OperationType
	LibraryRoot  string
}

// FileOperationResult is the outcome of one file-level operation.
type FileOperationResult struct {
	Success             bool
	Source              string
	Destination         string
	Operation           OperationType
	SizeBytes           int64
	SourceChecksum      string
	DestinationChecksum string
	IntegrityValidated  bool
	Duration            time.Duration
	Err                 error
}
