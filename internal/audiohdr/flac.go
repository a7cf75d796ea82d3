package audiohdr

import (
	"encoding/binary"
	"os"
)

// probeFLAC reads the STREAMINFO metadata block to compute exact duration
// (sample rate and total sample count are stored verbatim, unlike MP3's
// CBR estimate) and derives an average bitrate from file size.
func probeFLAC(path string) (Info, bool) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, false
	}
	defer f.Close()

	marker := make([]byte, 4)
	if _, err := f.Read(marker); err != nil || string(marker) != "fLaC" {
		return Info{}, false
	}

	blockHeader := make([]byte, 4)
	if _, err := f.Read(blockHeader); err != nil {
		return Info{}, false
	}
	blockType := blockHeader[0] & 0x7F
	length := int(blockHeader[1])<<16 | int(blockHeader[2])<<8 | int(blockHeader[3])
	if blockType != 0 || length < 34 {
		return Info{}, false
	}

	streamInfo := make([]byte, length)
	if _, err := f.Read(streamInfo); err != nil {
		return Info{}, false
	}

	// Bytes 10..17 pack: sample rate (20 bits), channels-1 (3 bits),
	// bits-per-sample-1 (5 bits), total samples (36 bits).
	packed := binary.BigEndian.Uint64(streamInfo[10:18])
	sampleRate := uint32(packed>>44) & 0xFFFFF
	totalSamples := packed & 0xFFFFFFFFF // low 36 bits

	if sampleRate == 0 || totalSamples == 0 {
		return Info{}, false
	}

	duration := float64(totalSamples) / float64(sampleRate)

	size, ok := fileSize(path)
	bitrate := 0
	if ok && duration > 0 {
		bitrate = int(float64(size*8) / duration / 1000)
	}
	return Info{DurationSeconds: duration, Bitrate: bitrate}, true
}
