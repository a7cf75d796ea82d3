package checksum

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_DeterministicAndMatchesKnownVector(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.bin")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

	sum, err := File(path)
	require.NoError(t, err)
	// sha256("hello world")
	assert.Equal(t, "b94d27b9934d3e08a52e52d7da7dacefbc4dd1e5e4a6791a2e0a36d9dff9b07b", sum)
}

func TestRange_SubsetDiffersFromWhole(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.bin")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o644))

	whole, err := File(path)
	require.NoError(t, err)
	partial, err := Range(path, 2, 5)
	require.NoError(t, err)
	assert.NotEqual(t, whole, partial)

	toEOF, err := Range(path, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, whole, toEOF)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("AB12", "ab12"))
	assert.False(t, Equal("AB12", "AB13"))
	assert.False(t, Equal("AB12", "AB1"))
}

func TestFile_MissingFile(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}
