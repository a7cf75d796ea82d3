// Package checksum computes streaming SHA-256 digests for integrity
// validation of file operations, either over a whole file or over a byte
// range (used for the audio-payload hash, which stays stable across
// metadata-only tag edits).
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/pavelvrba/bookorganizer/internal/model"
)

// BufferSize matches the streaming buffer FileOperator uses for copies, so
// a checksum pass and a copy pass touch the same amount of memory.
const BufferSize = 4 * 1024 * 1024

// File returns the hex-encoded SHA-256 of the whole file at path.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", model.Wrap(model.ErrIO, path, "opening file for checksum", err)
	}
	defer f.Close()
	return stream(path, f)
}

// Range returns the hex-encoded SHA-256 of the half-open byte range
// [start, end) in the file at path. end == 0 means "to EOF".
func Range(path string, start, end int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", model.Wrap(model.ErrIO, path, "opening file for checksum", err)
	}
	defer f.Close()

	if start > 0 {
		if _, err := f.Seek(start, io.SeekStart); err != nil {
			return "", model.Wrap(model.ErrIO, path, "seeking to checksum range start", err)
		}
	}

	var r io.Reader = f
	if end > start {
		r = io.LimitReader(f, end-start)
	}
	return streamReader(path, r)
}

func stream(path string, f *os.File) (string, error) {
	return streamReader(path, f)
}

func streamReader(path string, r io.Reader) (string, error) {
	h := sha256.New()
	buf := make([]byte, BufferSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", model.Wrap(model.ErrIO, path, "reading file for checksum", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Equal reports whether two hex-encoded digests match, case-insensitively
// to tolerate either upper or lower hex from external sources.
func Equal(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	decodedA, err := hex.DecodeString(a)
	if err != nil {
		return a == b
	}
	decodedB, err := hex.DecodeString(b)
	if err != nil {
		return a == b
	}
	if len(decodedA) != len(decodedB) {
		return false
	}
	for i := range decodedA {
		if decodedA[i] != decodedB[i] {
			return false
		}
	}
	return true
}
