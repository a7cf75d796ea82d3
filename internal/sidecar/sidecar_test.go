package sidecar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_BookInfoPreferredOverMetadata(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, BookInfoFileName), `{"author":"Stephen King","source":"manual"}`)
	writeFile(t, filepath.Join(dir, MetadataFileName), `{"author":"Other","series":[]}`)

	o, err := Load(dir, nil)
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, "Stephen King", *o.Author)
	assert.True(t, o.IsManual())
}

func TestLoad_ToleratesCommentsAndTrailingCommas(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, BookInfoFileName), "{\n  \"author\": \"Stephen King\", // primary author\n  \"series\": \"The Dark Tower\",\n}\n")

	o, err := Load(dir, nil)
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, "Stephen King", *o.Author)
}

func TestLoad_AudiobookshelfFormDetectedBySeriesArray(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, MetadataFileName), `{"title":"Mrtva schranka","author":"Sapkowski","series":[{"series":"Legie","sequence":"7"}]}`)

	o, err := Load(dir, nil)
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, "Legie", *o.Series)
	assert.Equal(t, "7", *o.SeriesNumber)
}

func TestLoad_MissingReturnsNil(t *testing.T) {
	dir := t.TempDir()
	o, err := Load(dir, nil)
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestCascade_ManualLocksDescendants(t *testing.T) {
	root := t.TempDir()
	authorDir := filepath.Join(root, "King Stephen")
	bookDir := filepath.Join(authorDir, "Dark Tower 1")
	writeFile(t, filepath.Join(authorDir, BookInfoFileName), `{"author":"Stephen King","source":"manual"}`)
	writeFile(t, filepath.Join(bookDir, BookInfoFileName), `{"author":"King S."}`)
	require.NoError(t, os.MkdirAll(bookDir, 0o755))

	chain := BuildChain(root, bookDir, nil)
	require.Len(t, chain, 2)
	effective := Evaluate(chain)
	require.NotNil(t, effective.Author)
	assert.Equal(t, "Stephen King", *effective.Author)
}

func TestCascade_NonManualChildOverridesNonManualParent(t *testing.T) {
	root := t.TempDir()
	authorDir := filepath.Join(root, "Author")
	bookDir := filepath.Join(authorDir, "Book")
	writeFile(t, filepath.Join(authorDir, BookInfoFileName), `{"author":"Parent Author"}`)
	writeFile(t, filepath.Join(bookDir, BookInfoFileName), `{"author":"Child Author"}`)
	require.NoError(t, os.MkdirAll(bookDir, 0o755))

	chain := BuildChain(root, bookDir, nil)
	effective := Evaluate(chain)
	require.NotNil(t, effective.Author)
	assert.Equal(t, "Child Author", *effective.Author)
}
