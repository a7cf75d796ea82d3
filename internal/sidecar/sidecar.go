// Package sidecar loads bookinfo.json/metadata.json overrides and
// evaluates the author→series→book hierarchical cascade with manual-lock
// semantics.
package sidecar

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pavelvrba/bookorganizer/internal/model"
)

// BookInfoFileName is the native sidecar, authoritative when manual.
const BookInfoFileName = "bookinfo.json"

// MetadataFileName is the legacy/Audiobookshelf-shaped sidecar, tolerated
// read-only.
const MetadataFileName = "metadata.json"

type bookInfoWire struct {
	Title        *string `json:"title"`
	Author       *string `json:"author"`
	Series       *string `json:"series"`
	SeriesNumber *string `json:"seriesNumber"`
	Narrator     *string `json:"narrator"`
	Year         *int    `json:"year"`
	DiscNumber   *int    `json:"discNumber"`
	Genre        *string `json:"genre"`
	Description  *string `json:"description"`
	Language     *string `json:"language"`
	Comment      *string `json:"comment"`
	Source       string  `json:"source"`
}

type audiobookshelfSeries struct {
	Series   string `json:"series"`
	Sequence string `json:"sequence"`
}

type audiobookshelfWire struct {
	Title         string                 `json:"title"`
	Author        string                 `json:"author"`
	Narrator      string                 `json:"narrator"`
	Publisher     string                 `json:"publisher"`
	Description   string                 `json:"description"`
	Language      string                 `json:"language"`
	PublishedYear string                 `json:"publishedYear"`
	Genres        []string               `json:"genres"`
	Series        []audiobookshelfSeries `json:"series"`
}

// commentLine strips a "// ..." line comment so bookinfo.json tolerates
// them as spec.md §6 requires; a naive strip is safe here since sidecar
// values never legitimately contain "//" outside of URLs, which this
// format doesn't carry.
var commentLine = regexp.MustCompile(`//.*$`)
var trailingComma = regexp.MustCompile(`,(\s*[}\]])`)

func tolerantJSON(raw []byte) []byte {
	var out []byte
	scanner := bufio.NewScanner(strings.NewReader(string(raw)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		out = append(out, commentLine.ReplaceAllString(scanner.Text(), "")...)
		out = append(out, '\n')
	}
	return trailingComma.ReplaceAll(out, []byte("$1"))
}

// Load reads bookinfo.json (preferred) or metadata.json from folder. A
// missing pair of files returns (nil, nil): no override, no error.
func Load(folder string, log *zap.Logger) (*model.MetadataOverride, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if raw, err := os.ReadFile(filepath.Join(folder, BookInfoFileName)); err == nil {
		var w bookInfoWire
		if err := json.Unmarshal(tolerantJSON(raw), &w); err != nil {
			log.Warn("sidecar: failed to parse bookinfo.json", zap.String("folder", folder), zap.Error(err))
			return nil, nil
		}
		return &model.MetadataOverride{
			Title: w.Title, Author: w.Author, Series: w.Series, SeriesNumber: w.SeriesNumber,
			Narrator: w.Narrator, Year: w.Year, DiscNumber: w.DiscNumber, Genre: w.Genre,
			Description: w.Description, Language: w.Language, Comment: w.Comment, Source: w.Source,
		}, nil
	}

	raw, err := os.ReadFile(filepath.Join(folder, MetadataFileName))
	if err != nil {
		return nil, nil
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		log.Warn("sidecar: failed to parse metadata.json", zap.String("folder", folder), zap.Error(err))
		return nil, nil
	}
	series, ok := probe["series"]
	if !ok || len(bytes.TrimSpace(series)) == 0 || bytes.TrimSpace(series)[0] != '[' {
		return nil, nil
	}

	var w audiobookshelfWire
	if err := json.Unmarshal(raw, &w); err != nil {
		log.Warn("sidecar: failed to parse Audiobookshelf metadata.json", zap.String("folder", folder), zap.Error(err))
		return nil, nil
	}
	return audiobookshelfToOverride(w), nil
}

func audiobookshelfToOverride(w audiobookshelfWire) *model.MetadataOverride {
	o := &model.MetadataOverride{Source: "metadata.json"}
	if w.Title != "" {
		o.Title = &w.Title
	}
	if w.Author != "" {
		o.Author = &w.Author
	}
	if w.Narrator != "" {
		o.Narrator = &w.Narrator
	}
	if w.Description != "" {
		o.Description = &w.Description
	}
	if w.Language != "" {
		o.Language = &w.Language
	}
	if y, err := strconv.Atoi(strings.TrimSpace(w.PublishedYear)); err == nil && y > 0 {
		o.Year = &y
	}
	if len(w.Genres) > 0 {
		g := strings.Join(w.Genres, ", ")
		o.Genre = &g
	}
	if len(w.Series) > 0 {
		o.Series = &w.Series[0].Series
		if w.Series[0].Sequence != "" {
			seq := w.Series[0].Sequence
			o.SeriesNumber = &seq
		}
	}
	return o
}
