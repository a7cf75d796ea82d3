// Package audiohdr probes audio file headers for duration and bitrate
// without decoding audio, since the corpus's tag library (dhowden/tag)
// exposes neither. Formats without a header-only duration (OGG, AAC,
// OPUS, WMA) report zero values rather than decoding, per the
// no-audio-decoding non-goal.
package audiohdr

import (
	"os"
	"path/filepath"
	"strings"
)

// Info is the subset of a file header probe that feeds RawTagData.
type Info struct {
	DurationSeconds float64
	Bitrate         int // kbps
}

// Probe inspects path by extension and dispatches to the matching parser.
// An unsupported or unparseable file yields a zero Info, not an error —
// duration/bitrate are always best-effort per spec.
func Probe(path string) Info {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		if info, ok := probeMP3(path); ok {
			return info
		}
	case ".flac":
		if info, ok := probeFLAC(path); ok {
			return info
		}
	case ".m4a", ".m4b":
		if info, ok := probeM4A(path); ok {
			return info
		}
	}
	return Info{}
}

func fileSize(path string) (int64, bool) {
	st, err := os.Stat(path)
	if err != nil {
		return 0, false
	}
	return st.Size(), true
}
