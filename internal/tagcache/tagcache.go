// Package tagcache reads and writes the mp3tags.json sidecar that memoises
// per-file tag extraction, keyed by relative path and staleness-checked on
// (mtime, size).
package tagcache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pavelvrba/bookorganizer/internal/model"
)

// FileName is the sidecar's name at the audiobook folder root.
const FileName = "mp3tags.json"

// Version is the schema version this package writes and expects on read.
const Version = "1.0"

type wireTags struct {
	Title       string  `json:"title,omitempty"`
	Album       string  `json:"album,omitempty"`
	Artist      string  `json:"artist,omitempty"`
	AlbumArtist string  `json:"albumArtist,omitempty"`
	Composer    string  `json:"composer,omitempty"`
	Genre       string  `json:"genre,omitempty"`
	Year        int     `json:"year"`
	Comment     string  `json:"comment,omitempty"`
	Duration    float64 `json:"durationSeconds"`
	Bitrate     int     `json:"bitrate"`
}

type wireEntry struct {
	RelativePath    string   `json:"relativePath"`
	LastModifiedUTC string   `json:"lastModifiedUtc"`
	FileSizeBytes   int64    `json:"fileSizeBytes"`
	Tags            wireTags `json:"tags"`
}

type wireCache struct {
	Version            string      `json:"version"`
	ScannedAtUTC       string      `json:"scannedAtUtc"`
	OriginalFolderPath string      `json:"originalFolderPath"`
	Files              []wireEntry `json:"files"`
}

// Cache wraps a loaded Mp3TagCache with folder-scoped lookup.
type Cache struct {
	folder string
	log    *zap.Logger
	data   *model.Mp3TagCache
}

// Load reads FileName from folder. A missing file, a parse failure, or a
// version mismatch all yield "no cache" (ok=false) without an error, per
// spec: an absent/invalid cache is never a failure, only an ignored one.
func Load(folder string, log *zap.Logger) (*Cache, bool) {
	if log == nil {
		log = zap.NewNop()
	}
	path := filepath.Join(folder, FileName)
	raw, err := os.ReadFile(path)
	if err != nil {
		return &Cache{folder: folder, log: log}, false
	}

	var wc wireCache
	if err := json.Unmarshal(raw, &wc); err != nil {
		log.Warn("tagcache: failed to parse cache, ignoring", zap.String("path", path), zap.Error(err))
		return &Cache{folder: folder, log: log}, false
	}
	if wc.Version != Version {
		return &Cache{folder: folder, log: log}, false
	}

	data := &model.Mp3TagCache{
		Version:            wc.Version,
		OriginalFolderPath: wc.OriginalFolderPath,
		Entries:            make([]model.TagCacheEntry, 0, len(wc.Files)),
	}
	if t, err := time.Parse(time.RFC3339, wc.ScannedAtUTC); err == nil {
		data.ScannedAtUTC = t
	}
	for _, f := range wc.Files {
		modTime, _ := time.Parse(time.RFC3339, f.LastModifiedUTC)
		data.Entries = append(data.Entries, model.TagCacheEntry{
			RelativePath:    f.RelativePath,
			LastModifiedUTC: modTime,
			SizeBytes:       f.FileSizeBytes,
			Tags: model.RawTagData{
				Title: f.Tags.Title, Album: f.Tags.Album, Artist: f.Tags.Artist,
				AlbumArtist: f.Tags.AlbumArtist, Composer: f.Tags.Composer,
				Genre: f.Tags.Genre, Year: f.Tags.Year, Comment: f.Tags.Comment,
				Duration: f.Tags.Duration, Bitrate: f.Tags.Bitrate,
			},
		})
	}
	return &Cache{folder: folder, log: log, data: data}, true
}

// Lookup finds a valid (case-insensitive relativePath match, file exists,
// mtime and size unchanged) cached entry for relativePath.
func (c *Cache) Lookup(relativePath string) (model.RawTagData, bool) {
	if c.data == nil {
		return model.RawTagData{}, false
	}
	for _, e := range c.data.Entries {
		if !strings.EqualFold(e.RelativePath, relativePath) {
			continue
		}
		full := filepath.Join(c.folder, e.RelativePath)
		info, err := os.Stat(full)
		if err != nil {
			return model.RawTagData{}, false
		}
		if !info.ModTime().UTC().Equal(e.LastModifiedUTC.UTC()) || info.Size() != e.SizeBytes {
			return model.RawTagData{}, false
		}
		return e.Tags, true
	}
	return model.RawTagData{}, false
}

// Put stages a fresh extraction result for relativePath, to be persisted
// by Save. It replaces any existing entry for the same path.
func (c *Cache) Put(relativePath string, tags model.RawTagData) {
	full := filepath.Join(c.folder, relativePath)
	info, err := os.Stat(full)
	if err != nil {
		c.log.Warn("tagcache: cannot stat file to cache", zap.String("path", full), zap.Error(err))
		return
	}
	entry := model.TagCacheEntry{
		RelativePath:    relativePath,
		LastModifiedUTC: info.ModTime().UTC(),
		SizeBytes:       info.Size(),
		Tags:            tags,
	}
	if c.data == nil {
		c.data = &model.Mp3TagCache{Version: Version, OriginalFolderPath: c.folder}
	}
	for i, e := range c.data.Entries {
		if strings.EqualFold(e.RelativePath, relativePath) {
			c.data.Entries[i] = entry
			return
		}
	}
	c.data.Entries = append(c.data.Entries, entry)
}

// nowFn is overridable in tests; production code always uses time.Now.
var nowFn = time.Now

// Save writes the cache back to folder. Write failures are logged and
// swallowed — per spec, a cache write failure must never fail the caller.
func (c *Cache) Save() {
	if c.data == nil {
		return
	}
	c.data.ScannedAtUTC = nowFn().UTC()
	c.data.Version = Version
	c.data.OriginalFolderPath = c.folder

	wc := wireCache{
		Version:            c.data.Version,
		ScannedAtUTC:       c.data.ScannedAtUTC.Format(time.RFC3339),
		OriginalFolderPath: c.data.OriginalFolderPath,
		Files:              make([]wireEntry, 0, len(c.data.Entries)),
	}
	for _, e := range c.data.Entries {
		wc.Files = append(wc.Files, wireEntry{
			RelativePath:    e.RelativePath,
			LastModifiedUTC: e.LastModifiedUTC.Format(time.RFC3339Nano),
			FileSizeBytes:   e.SizeBytes,
			Tags: wireTags{
				Title: e.Tags.Title, Album: e.Tags.Album, Artist: e.Tags.Artist,
				AlbumArtist: e.Tags.AlbumArtist, Composer: e.Tags.Composer,
				Genre: e.Tags.Genre, Year: e.Tags.Year, Comment: e.Tags.Comment,
				Duration: e.Tags.Duration, Bitrate: e.Tags.Bitrate,
			},
		})
	}

	data, err := json.MarshalIndent(wc, "", "  ")
	if err != nil {
		c.log.Warn("tagcache: failed to marshal cache", zap.Error(err))
		return
	}
	path := filepath.Join(c.folder, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.log.Warn("tagcache: failed to write cache", zap.String("path", path), zap.Error(err))
	}
}
