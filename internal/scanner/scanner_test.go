package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelvrba/bookorganizer/internal/model"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestScan_SingleFolder(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Book One", "track01.mp3"))
	touch(t, filepath.Join(root, "Book One", "cover.jpg"))

	s := New(nil)
	folders, err := s.Scan(context.Background(), root, nil)
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, filepath.Join(root, "Book One"), folders[0].Path)
	assert.Len(t, folders[0].AudioFiles, 1)
	assert.Len(t, folders[0].OtherFiles, 1)
	assert.False(t, folders[0].IsMultiDisc())
}

func TestScan_MultiDiscAggregates(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Book Two", "Disc 1", "a.mp3"))
	touch(t, filepath.Join(root, "Book Two", "Disc 2", "b.mp3"))
	touch(t, filepath.Join(root, "Book Two", "CD3", "c.mp3"))

	s := New(nil)
	folders, err := s.Scan(context.Background(), root, nil)
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.True(t, folders[0].IsMultiDisc())
	assert.Equal(t, []string{"CD3", "Disc 1", "Disc 2"}, folders[0].DiscSubfolders)
	assert.Len(t, folders[0].AudioFiles, 3)
}

func TestScan_DiscSubfolderNotReportedSeparately(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Book Three", "Disc 1", "a.mp3"))

	s := New(nil)
	folders, err := s.Scan(context.Background(), root, nil)
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, filepath.Join(root, "Book Three"), folders[0].Path)
}

func TestScan_IgnoresHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, ".cache", "a.mp3"))

	s := New(nil)
	folders, err := s.Scan(context.Background(), root, nil)
	require.NoError(t, err)
	assert.Empty(t, folders)
}

func TestScan_EmptyResultIsNotAnError(t *testing.T) {
	root := t.TempDir()
	s := New(nil)
	folders, err := s.Scan(context.Background(), root, nil)
	require.NoError(t, err)
	assert.Empty(t, folders)
}

func TestScan_MissingRootFails(t *testing.T) {
	s := New(nil)
	_, err := s.Scan(context.Background(), filepath.Join(t.TempDir(), "nope"), nil)
	require.Error(t, err)
	assert.True(t, model.OfKind(err, model.ErrSourceNotFound))
}

func TestScan_Cancellation(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Book", "a.mp3"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(nil)
	_, err := s.Scan(ctx, root, nil)
	require.Error(t, err)
	assert.True(t, model.OfKind(err, model.ErrCancelled))
}
