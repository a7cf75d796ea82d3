package dedup

import (
	"github.com/pavelvrba/bookorganizer/internal/audiohdr"
	"github.com/pavelvrba/bookorganizer/internal/model"
)

// contentStats is one folder's aggregate duration and byte total, as read
// by ContentAnalyzer without decoding any audio payload.
type contentStats struct {
	durationSeconds float64
	totalBytes      int64
}

// ContentAnalyzer sums per-file duration/bitrate headers for a folder,
// cheaply enough to run on every pair a DeduplicationDetector considers.
type ContentAnalyzer struct{}

// NewContentAnalyzer returns a ContentAnalyzer. It carries no state.
func NewContentAnalyzer() *ContentAnalyzer { return &ContentAnalyzer{} }

// Analyze probes every audio file under folder and sums their durations
// against the folder's already-known total byte count.
func (c *ContentAnalyzer) Analyze(folder model.AudiobookFolder) contentStats {
	var stats contentStats
	stats.totalBytes = folder.TotalAudioBytes
	for _, f := range folder.AudioFiles {
		hdr := audiohdr.Probe(f)
		stats.durationSeconds += hdr.DurationSeconds
	}
	return stats
}

// durationSimilarity is 1 - min(1, |d1-d2| / max(d1,d2)); two zero
// durations are similarity 1 (nothing to disagree about).
func durationSimilarity(a, b float64) float64 {
	return ratioSimilarity(a, b)
}

// sizeSimilarity is durationSimilarity's byte-total counterpart.
func sizeSimilarity(a, b int64) float64 {
	return ratioSimilarity(float64(a), float64(b))
}

func ratioSimilarity(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 1
	}
	max := a
	if b > max {
		max = b
	}
	if max == 0 {
		return 1
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	ratio := diff / max
	if ratio > 1 {
		ratio = 1
	}
	return 1 - ratio
}
