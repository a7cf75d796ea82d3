package organizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupEmptyDirectories_RemovesArtifactOnlyLeafDeepestFirst(t *testing.T) {
	root := t.TempDir()
	leaf := filepath.Join(root, "Author", "Series", "Book")
	require.NoError(t, os.MkdirAll(leaf, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(leaf, "bookinfo.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(leaf, "Thumbs.db"), nil, 0o644))

	removed, err := CleanupEmptyDirectories(root)
	require.NoError(t, err)
	assert.Contains(t, removed, leaf)
	assert.Contains(t, removed, filepath.Join(root, "Author", "Series"))
	assert.Contains(t, removed, filepath.Join(root, "Author"))

	_, statErr := os.Stat(filepath.Join(root, "Author"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCleanupEmptyDirectories_KeepsDirectoryWithRealFile(t *testing.T) {
	root := t.TempDir()
	leaf := filepath.Join(root, "Author", "Book")
	require.NoError(t, os.MkdirAll(leaf, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(leaf, "book.mp3"), []byte("audio"), 0o644))

	removed, err := CleanupEmptyDirectories(root)
	require.NoError(t, err)
	assert.Empty(t, removed)
	_, statErr := os.Stat(leaf)
	assert.NoError(t, statErr)
}
