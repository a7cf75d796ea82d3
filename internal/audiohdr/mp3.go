package audiohdr

import (
	"os"
)

// Layer III bitrate tables in kbps, indexed by the 4-bit bitrate field;
// index 0 is "free/bad". MPEG1 uses mpeg1Layer3Bitrates; MPEG2 and MPEG2.5
// share mpeg2Layer3Bitrates. Layers I and II have no table here.
var mpeg1Layer3Bitrates = []int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320}
var mpeg2Layer3Bitrates = []int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160}

var sampleRatesMPEG1 = []int{44100, 48000, 32000}
var sampleRatesMPEG2 = []int{22050, 24000, 16000}
var sampleRatesMPEG25 = []int{11025, 12000, 8000}

// probeMP3 skips any leading ID3v2 tag, locates the first valid MPEG audio
// frame header, and estimates duration from file size and bitrate under a
// CBR assumption. VBR files will be off but still broadly plausible,
// matching the "best effort, never decode" contract.
func probeMP3(path string) (Info, bool) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, false
	}
	defer f.Close()

	size, ok := fileSize(path)
	if !ok || size == 0 {
		return Info{}, false
	}

	header := make([]byte, 10)
	n, err := f.Read(header)
	if err != nil || n < 10 {
		return Info{}, false
	}

	offset := int64(0)
	if header[0] == 'I' && header[1] == 'D' && header[2] == '3' {
		tagSize := syncSafeInt(header[6], header[7], header[8], header[9])
		offset = 10 + int64(tagSize)
	}

	buf := make([]byte, 4096)
	if _, err := f.Seek(offset, 0); err != nil {
		return Info{}, false
	}
	nRead, err := f.Read(buf)
	if err != nil || nRead < 4 {
		return Info{}, false
	}
	buf = buf[:nRead]

	for i := 0; i+4 <= len(buf); i++ {
		if buf[i] != 0xFF || buf[i+1]&0xE0 != 0xE0 {
			continue
		}
		bitrate, sampleRate, ok := parseMP3FrameHeader(buf[i], buf[i+1], buf[i+2])
		if !ok || bitrate == 0 || sampleRate == 0 {
			continue
		}
		payload := size - offset - int64(i)
		if payload <= 0 {
			continue
		}
		durationSeconds := float64(payload*8) / float64(bitrate*1000)
		return Info{DurationSeconds: durationSeconds, Bitrate: bitrate}, true
	}
	return Info{}, false
}

func syncSafeInt(b0, b1, b2, b3 byte) int {
	return int(b0)<<21 | int(b1)<<14 | int(b2)<<7 | int(b3)
}

// parseMP3FrameHeader decodes bytes [1] (version/layer) and [2]
// (bitrate/samplerate) of a 4-byte MPEG frame header (byte 0 is the sync
// byte 0xFF, already matched by the caller).
func parseMP3FrameHeader(b0, b1, b2 byte) (bitrateKbps, sampleRate int, ok bool) {
	versionBits := (b1 >> 3) & 0x03 // 00=MPEG2.5, 10=MPEG2, 11=MPEG1
	layerBits := (b1 >> 1) & 0x03   // 01=LayerIII, 10=LayerII, 11=LayerI
	if layerBits != 0x01 {
		// Only layer III (the overwhelming majority of audiobook mp3s) is
		// tabulated; other layers report "unknown" rather than guessing.
		return 0, 0, false
	}

	bitrateIndex := (b2 >> 4) & 0x0F
	sampleRateIndex := (b2 >> 2) & 0x03
	if bitrateIndex == 0 || bitrateIndex == 0x0F || sampleRateIndex == 0x03 {
		return 0, 0, false
	}

	switch versionBits {
	case 0x03: // MPEG1
		bitrateKbps = mpeg1Layer3Bitrates[bitrateIndex]
		sampleRate = sampleRatesMPEG1[sampleRateIndex]
	case 0x02: // MPEG2
		bitrateKbps = mpeg2Layer3Bitrates[bitrateIndex]
		sampleRate = sampleRatesMPEG2[sampleRateIndex]
	case 0x00: // MPEG2.5
		bitrateKbps = mpeg2Layer3Bitrates[bitrateIndex]
		sampleRate = sampleRatesMPEG25[sampleRateIndex]
	default:
		return 0, 0, false
	}
	return bitrateKbps, sampleRate, true
}
