package tagcache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelvrba/bookorganizer/internal/model"
)

func TestLoad_MissingIsNotError(t *testing.T) {
	dir := t.TempDir()
	_, ok := Load(dir, nil)
	assert.False(t, ok)
}

func TestPutSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "track01.mp3")
	require.NoError(t, os.WriteFile(audioPath, []byte("data"), 0o644))

	c, _ := Load(dir, nil)
	c.Put("track01.mp3", model.RawTagData{Title: "Mrtva schranka", Year: 2018})
	c.Save()

	c2, ok := Load(dir, nil)
	require.True(t, ok)
	tags, hit := c2.Lookup("track01.mp3")
	require.True(t, hit)
	assert.Equal(t, "Mrtva schranka", tags.Title)
	assert.Equal(t, 2018, tags.Year)
}

func TestLookup_CaseInsensitivePath(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "Track01.mp3")
	require.NoError(t, os.WriteFile(audioPath, []byte("data"), 0o644))

	c, _ := Load(dir, nil)
	c.Put("Track01.mp3", model.RawTagData{Title: "X"})
	c.Save()

	c2, _ := Load(dir, nil)
	_, hit := c2.Lookup("TRACK01.MP3")
	assert.True(t, hit)
}

func TestLookup_StaleOnSizeChange(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "track01.mp3")
	require.NoError(t, os.WriteFile(audioPath, []byte("data"), 0o644))

	c, _ := Load(dir, nil)
	c.Put("track01.mp3", model.RawTagData{Title: "X"})
	c.Save()

	require.NoError(t, os.WriteFile(audioPath, []byte("much longer data now"), 0o644))

	c2, _ := Load(dir, nil)
	_, hit := c2.Lookup("track01.mp3")
	assert.False(t, hit)
}

func TestLoad_VersionMismatchIgnored(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"version":"0.1","files":[]}`), 0o644))
	_, ok := Load(dir, nil)
	assert.False(t, ok)
}

func TestSave_StampsCurrentTime(t *testing.T) {
	orig := nowFn
	defer func() { nowFn = orig }()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	nowFn = func() time.Time { return fixed }

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.mp3"), []byte("x"), 0o644))
	c, _ := Load(dir, nil)
	c.Put("a.mp3", model.RawTagData{})
	c.Save()

	c2, ok := Load(dir, nil)
	require.True(t, ok)
	assert.Equal(t, fixed, c2.data.ScannedAtUTC)
}
