package organizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUndoLog_AppendThenUndoRestoresFiles(t *testing.T) {
	libraryRoot := t.TempDir()
	sourceDir := filepath.Join(libraryRoot, "src-was-here")
	targetDir := filepath.Join(libraryRoot, "Author", "Book")
	require.NoError(t, os.MkdirAll(targetDir, 0o755))
	written := filepath.Join(targetDir, "chapter1.mp3")
	require.NoError(t, os.WriteFile(written, []byte("audio"), 0o644))

	log := NewUndoLog("", nil)
	op := NewUndoOperation()
	op.Entries = append(op.Entries, UndoEntry{SourcePath: sourceDir, TargetPath: targetDir, Files: []string{written}})
	require.NoError(t, log.Append(libraryRoot, *op))

	ops, err := log.Load(libraryRoot)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.NotEmpty(t, ops[0].ID)

	require.NoError(t, log.Undo(libraryRoot))

	restored := filepath.Join(sourceDir, "chapter1.mp3")
	got, err := os.ReadFile(restored)
	require.NoError(t, err)
	assert.Equal(t, "audio", string(got))

	_, statErr := os.Stat(written)
	assert.True(t, os.IsNotExist(statErr))

	remaining, err := log.Load(libraryRoot)
	require.NoError(t, err)
	assert.Empty(t, remaining, "the undone operation should be dropped from the log")
}
