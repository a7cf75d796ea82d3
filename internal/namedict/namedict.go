// Package namedict loads and queries the optional per-library name
// dictionary: a lookup table mapping diacritic-free keys to the canonical
// spelling an author or narrator should be rendered with.
package namedict

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pavelvrba/bookorganizer/internal/model"
	"github.com/pavelvrba/bookorganizer/internal/textnorm"
)

// FileName is the name of the dictionary sidecar at the library root.
const FileName = "namedict.json"

// Dictionary maps a diacritic-free, lowercased key to its canonical
// spelling.
type Dictionary struct {
	entries map[string]string
}

// Load reads FileName from libraryRoot. A missing file is not an error and
// yields an empty, always-miss Dictionary, since the dictionary is
// optional per spec.
func Load(libraryRoot string) (*Dictionary, error) {
	path := filepath.Join(libraryRoot, FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Dictionary{entries: map[string]string{}}, nil
	}
	if err != nil {
		return nil, model.Wrap(model.ErrIO, path, "reading name dictionary", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, model.Wrap(model.ErrIO, path, "parsing name dictionary", err)
	}

	entries := make(map[string]string, len(raw))
	for k, v := range raw {
		entries[normalizeKey(k)] = v
	}
	return &Dictionary{entries: entries}, nil
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(textnorm.RemoveDiacritics(s)))
}

// Lookup returns the canonical spelling for name, and whether one was
// found. The key is derived the same way dictionary keys are normalised on
// load: diacritics stripped, lowercased, trimmed.
func (d *Dictionary) Lookup(name string) (string, bool) {
	if d == nil || len(d.entries) == 0 {
		return name, false
	}
	canonical, ok := d.entries[normalizeKey(name)]
	if !ok {
		return name, false
	}
	return canonical, true
}

// Apply returns the dictionary's canonical spelling for name if present,
// else name unchanged. Convenience wrapper for call sites that don't need
// the found flag.
func (d *Dictionary) Apply(name string) string {
	canonical, _ := d.Lookup(name)
	return canonical
}
