package audiohdr

import (
	"encoding/binary"
	"io"
	"os"
)

// probeM4A walks the top-level MP4 box structure looking for moov/mvhd,
// which stores the movie's timescale and duration regardless of which
// audio codec (AAC, ALAC) the mdat payload holds.
func probeM4A(path string) (Info, bool) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, false
	}
	defer f.Close()

	size, ok := fileSize(path)
	if !ok {
		return Info{}, false
	}

	moovOffset, moovSize, ok := findBox(f, 0, size, "moov")
	if !ok {
		return Info{}, false
	}
	mvhdOffset, mvhdSize, ok := findBox(f, moovOffset, moovOffset+moovSize, "mvhd")
	if !ok {
		return Info{}, false
	}

	if _, err := f.Seek(mvhdOffset, io.SeekStart); err != nil {
		return Info{}, false
	}
	buf := make([]byte, mvhdSize)
	if _, err := io.ReadFull(f, buf); err != nil {
		return Info{}, false
	}
	if len(buf) < 4 {
		return Info{}, false
	}

	version := buf[0]
	var timescale, duration uint64
	if version == 1 {
		if len(buf) < 32 {
			return Info{}, false
		}
		timescale = uint64(binary.BigEndian.Uint32(buf[20:24]))
		duration = binary.BigEndian.Uint64(buf[24:32])
	} else {
		if len(buf) < 20 {
			return Info{}, false
		}
		timescale = uint64(binary.BigEndian.Uint32(buf[12:16]))
		duration = uint64(binary.BigEndian.Uint32(buf[16:20]))
	}
	if timescale == 0 {
		return Info{}, false
	}

	durationSeconds := float64(duration) / float64(timescale)
	bitrate := 0
	if durationSeconds > 0 {
		bitrate = int(float64(size*8) / durationSeconds / 1000)
	}
	return Info{DurationSeconds: durationSeconds, Bitrate: bitrate}, true
}

// findBox searches [start, end) for a top-level box with the given
// fourCC, returning the offset and length of its payload (after the
// 8-byte, or 16-byte for 64-bit sized, box header).
func findBox(f *os.File, start, end int64, fourCC string) (payloadOffset, payloadLen int64, ok bool) {
	pos := start
	header := make([]byte, 8)
	for pos+8 <= end {
		if _, err := f.Seek(pos, io.SeekStart); err != nil {
			return 0, 0, false
		}
		if _, err := io.ReadFull(f, header); err != nil {
			return 0, 0, false
		}
		boxSize := int64(binary.BigEndian.Uint32(header[0:4]))
		name := string(header[4:8])
		headerLen := int64(8)

		if boxSize == 1 {
			ext := make([]byte, 8)
			if _, err := io.ReadFull(f, ext); err != nil {
				return 0, 0, false
			}
			boxSize = int64(binary.BigEndian.Uint64(ext))
			headerLen = 16
		}
		if boxSize < headerLen {
			return 0, 0, false
		}

		if name == fourCC {
			return pos + headerLen, boxSize - headerLen, true
		}
		pos += boxSize
	}
	return 0, 0, false
}
