package audiohdr

import (
	"os"
	"path/filepath"
	"strings"
)

// InvariantRange reports the half-open byte range that stays stable across
// a metadata-only tag edit: past any leading ID3v2 tag, short of any
// trailing 128-byte ID3v1 tag. Only MP3 is recognised today, since it's
// the only format whose tag placement this package already parses for
// duration probing; other extensions report ok=false so the caller falls
// back to a full-file hash.
func InvariantRange(path string) (start, end int64, ok bool) {
	if strings.ToLower(filepath.Ext(path)) != ".mp3" {
		return 0, 0, false
	}

	size, sizeOK := fileSize(path)
	if !sizeOK || size < 10 {
		return 0, 0, false
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, 0, false
	}
	defer f.Close()

	header := make([]byte, 10)
	n, err := f.Read(header)
	if err != nil || n < 10 {
		return 0, 0, false
	}

	start = 0
	if header[0] == 'I' && header[1] == 'D' && header[2] == '3' {
		tagSize := syncSafeInt(header[6], header[7], header[8], header[9])
		start = 10 + int64(tagSize)
	}

	end = size
	if size >= 128 {
		trailer := make([]byte, 3)
		if _, err := f.Seek(size-128, 0); err == nil {
			if n, err := f.Read(trailer); err == nil && n == 3 && string(trailer) == "TAG" {
				end = size - 128
			}
		}
	}

	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}
