package organizer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelvrba/bookorganizer/internal/model"
)

func TestOrganizeFromSource_MovesSingleBookIntoLibraryLayout(t *testing.T) {
	sourceRoot := t.TempDir()
	libraryRoot := t.TempDir()

	bookDir := filepath.Join(sourceRoot, "Some Weird Folder Name")
	require.NoError(t, os.MkdirAll(bookDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(bookDir, "chapter1.mp3"), []byte("fake audio bytes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(bookDir, "bookinfo.json"),
		[]byte(`{"author":"Jane Author","title":"My Book","source":"manual"}`), 0o644))

	o := New(nil, nil, nil)
	result, err := o.OrganizeFromSource(context.Background(), sourceRoot, libraryRoot, Options{
		Operation: model.OpCopy,
	})
	require.NoError(t, err)
	require.Len(t, result.Plans, 1)
	require.Len(t, result.Executions, 1)
	assert.True(t, result.Executions[0].Success)

	target := result.Plans[0].TargetPath
	require.NotEmpty(t, target)
	assert.Contains(t, target, libraryRoot)

	got, err := os.ReadFile(filepath.Join(target, "chapter1.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "fake audio bytes", string(got))

	_, err = os.Stat(filepath.Join(target, NFOFileName))
	assert.NoError(t, err, "metadata.nfo should be written on success")

	// Source is untouched by a Copy operation.
	_, err = os.Stat(filepath.Join(bookDir, "chapter1.mp3"))
	assert.NoError(t, err)
}

func TestOrganizeFromSource_DryRunProducesPlansWithoutTouchingDisk(t *testing.T) {
	sourceRoot := t.TempDir()
	libraryRoot := t.TempDir()

	bookDir := filepath.Join(sourceRoot, "Another Book")
	require.NoError(t, os.MkdirAll(bookDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(bookDir, "track.mp3"), []byte("x"), 0o644))

	o := New(nil, nil, nil)
	result, err := o.OrganizeFromSource(context.Background(), sourceRoot, libraryRoot, Options{
		Operation: model.OpCopy, DryRun: true,
	})
	require.NoError(t, err)
	require.Len(t, result.Plans, 1)
	assert.Empty(t, result.Executions)

	entries, err := os.ReadDir(libraryRoot)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReorganizeLibrary_NoOpWhenAlreadyAtExpectedPath(t *testing.T) {
	libraryRoot := t.TempDir()
	o := New(nil, nil, nil)

	sourceRoot := t.TempDir()
	bookDir := filepath.Join(sourceRoot, "Already Organized")
	require.NoError(t, os.MkdirAll(bookDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(bookDir, "t.mp3"), []byte("y"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(bookDir, "bookinfo.json"),
		[]byte(`{"author":"Ann Author","title":"Settled Book","source":"manual"}`), 0o644))

	first, err := o.OrganizeFromSource(context.Background(), sourceRoot, libraryRoot, Options{Operation: model.OpCopy})
	require.NoError(t, err)
	require.Len(t, first.Executions, 1)
	require.True(t, first.Executions[0].Success)

	second, err := o.ReorganizeLibrary(context.Background(), libraryRoot, Options{Operation: model.OpMove})
	require.NoError(t, err)
	assert.Empty(t, second.Plans, "a book already at its expected path should not be queued for a move")
}
