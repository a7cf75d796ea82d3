package organizer

import (
	"encoding/xml"
	"os"
	"path/filepath"

	"github.com/pavelvrba/bookorganizer/internal/model"
)

// nfoDocument is the Kodi/Plex-style "<audiobook>" NFO shape Audiobookshelf
// and similar library scanners read as a sidecar summary, independent of
// bookinfo.json/metadata.json (those feed extraction; this is extraction's
// output, written once a plan lands).
type nfoDocument struct {
	XMLName  xml.Name `xml:"audiobook"`
	Title    string   `xml:"title"`
	Author   string   `xml:"author"`
	Series   string   `xml:"series,omitempty"`
	Book     string   `xml:"book,omitempty"` // series number, kept as text: may be non-numeric
	Narrator string   `xml:"narrator,omitempty"`
	Year     int      `xml:"year,omitempty"`
	Genre    string   `xml:"genre,omitempty"`
	Plot     string   `xml:"plot,omitempty"`
}

// NFOFileName is the sidecar summary written into every organized target
// directory, unless one is already present.
const NFOFileName = "metadata.nfo"

// writeNFOIfAbsent writes metadata.nfo under targetDir from meta, unless a
// file by that name already exists there (an already-organized target is
// never overwritten by a later run).
func writeNFOIfAbsent(targetDir string, meta model.ConsolidatedMetadata) error {
	path := filepath.Join(targetDir, NFOFileName)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	book := meta.ToBookMetadata()
	doc := nfoDocument{
		Title:    book.Title,
		Author:   book.Author,
		Series:   book.Series,
		Book:     book.SeriesNumber,
		Narrator: book.Narrator,
		Year:     book.Year,
		Genre:    book.Genre,
		Plot:     book.Description,
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append([]byte(xml.Header), data...)
	return os.WriteFile(path, data, 0o644)
}
