package namedict

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDict(t *testing.T, dir string, entries map[string]string) {
	t.Helper()
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), data, 0o644))
}

func TestLoad_Missing(t *testing.T) {
	dir := t.TempDir()
	d, err := Load(dir)
	require.NoError(t, err)
	name, ok := d.Lookup("Andrzej Sapkowski")
	assert.False(t, ok)
	assert.Equal(t, "Andrzej Sapkowski", name)
}

func TestLoad_LookupByDiacriticFreeKey(t *testing.T) {
	dir := t.TempDir()
	writeDict(t, dir, map[string]string{"andrzej sapkowski": "Andrzej Sapkowski"})

	d, err := Load(dir)
	require.NoError(t, err)

	canonical, ok := d.Lookup("ANDRZEJ SAPKOWSKI")
	assert.True(t, ok)
	assert.Equal(t, "Andrzej Sapkowski", canonical)

	canonical, ok = d.Lookup("  andrzej   sapkowski  ")
	assert.False(t, ok) // whitespace isn't collapsed by normalizeKey, only trimmed
	assert.Equal(t, "  andrzej   sapkowski  ", canonical)
}

func TestApply_FallsBackToInput(t *testing.T) {
	dir := t.TempDir()
	d, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "Unknown Author", d.Apply("Unknown Author"))
}
