package extractor

import (
	"os"
	"strings"

	"github.com/dhowden/tag"

	"github.com/pavelvrba/bookorganizer/internal/audiohdr"
	"github.com/pavelvrba/bookorganizer/internal/model"
	"github.com/pavelvrba/bookorganizer/internal/textnorm"
)

// readTags extracts one file's RawTagData: textual fields from
// dhowden/tag, duration/bitrate from audiohdr since dhowden/tag exposes
// neither without decoding. Every string passes through
// textnorm.FixCzechEncoding per spec §4.3.
func readTags(path string) (model.RawTagData, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.RawTagData{}, model.Wrap(model.ErrIO, path, "opening audio file", err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return model.RawTagData{}, model.Wrap(model.ErrCorruptAudioFile, path, "reading tags", err)
	}

	performers := splitPerformers(m.Artist())
	albumArtistPerformers := splitPerformers(m.AlbumArtist())

	raw := model.RawTagData{
		Title:       textnorm.FixCzechEncoding(strings.TrimSpace(m.Title())),
		Album:       textnorm.FixCzechEncoding(strings.TrimSpace(m.Album())),
		Artist:      textnorm.FixCzechEncoding(joinPerformers(performers)),
		AlbumArtist: textnorm.FixCzechEncoding(joinPerformers(albumArtistPerformers)),
		Composer:    textnorm.FixCzechEncoding(strings.TrimSpace(m.Composer())),
		Genre:       textnorm.FixCzechEncoding(strings.TrimSpace(m.Genre())),
		Comment:     textnorm.FixCzechEncoding(strings.TrimSpace(m.Comment())),
		Year:        m.Year(),
		Performers:  performers,
	}

	hdr := audiohdr.Probe(path)
	raw.Duration = hdr.DurationSeconds
	raw.Bitrate = hdr.Bitrate

	return raw, nil
}

// splitPerformers splits a tag's artist/album-artist value on ';' into
// individual performer names. '/' is deliberately left alone: it also
// introduces the Czech narrator-prefix marker (e.g. "Karel Čapek / čte
// Viktor Preiss"), which must survive intact for splitNarrator.
func splitPerformers(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ";") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{s}
	}
	return out
}

func joinPerformers(performers []string) string {
	return strings.Join(performers, "; ")
}
