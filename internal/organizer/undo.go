package organizer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UndoEntry records one source folder's migration, the way the teacher's
// LogEntry records one move: enough to walk every written file back to
// where it came from.
type UndoEntry struct {
	SourcePath string   `json:"source_path"`
	TargetPath string   `json:"target_path"`
	Files      []string `json:"files"` // absolute paths under TargetPath
}

// UndoOperation groups every UndoEntry produced by one organizer run under
// a single identifier. Undo always reverses the most recent operation in
// the log.
type UndoOperation struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Entries   []UndoEntry `json:"entries"`
}

// NewUndoOperation starts an empty operation record with a fresh
// identifier. The timestamp is filled in by UndoLog.Append.
func NewUndoOperation() *UndoOperation {
	return &UndoOperation{ID: uuid.NewString()}
}

// UndoLog persists organizer runs as a JSON array of UndoOperation,
// mirroring the teacher's single-array LogEntry file but keyed per run
// so multiple organize invocations against one library accumulate
// instead of overwriting each other.
type UndoLog struct {
	log  *zap.Logger
	path string
}

// NewUndoLog opens the undo log at path (created lazily on first Append).
// A nil logger is replaced with zap's no-op logger.
func NewUndoLog(path string, log *zap.Logger) *UndoLog {
	if log == nil {
		log = zap.NewNop()
	}
	return &UndoLog{log: log, path: path}
}

// DefaultUndoLogPath is the log file name the teacher used for its own
// move log, adopted here for the same directory-local convention.
const DefaultUndoLogPath = ".bookorganizer.log"

// Append reads the existing log (if any), stamps op's timestamp, appends
// it, and rewrites the file. libraryRoot is only used to resolve a
// relative log path; UndoLog.path wins when absolute.
func (u *UndoLog) Append(libraryRoot string, op UndoOperation) error {
	op.Timestamp = time.Now()
	path := u.resolvePath(libraryRoot)

	var ops []UndoOperation
	if data, err := os.ReadFile(path); err == nil {
		if jsonErr := json.Unmarshal(data, &ops); jsonErr != nil {
			return fmt.Errorf("undo log %s is corrupt: %w", path, jsonErr)
		}
	}
	ops = append(ops, op)

	data, err := json.MarshalIndent(ops, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load returns every recorded operation, most recent last.
func (u *UndoLog) Load(libraryRoot string) ([]UndoOperation, error) {
	data, err := os.ReadFile(u.resolvePath(libraryRoot))
	if err != nil {
		return nil, err
	}
	var ops []UndoOperation
	if err := json.Unmarshal(data, &ops); err != nil {
		return nil, fmt.Errorf("undo log is corrupt: %w", err)
	}
	return ops, nil
}

// Undo reverses the most recent operation: every file listed is moved
// from its TargetPath back under SourcePath, and the operation is removed
// from the log. It fails fast if any file is missing from its recorded
// target, leaving the log untouched so the failure can be investigated.
func (u *UndoLog) Undo(libraryRoot string) error {
	path := u.resolvePath(libraryRoot)
	ops, err := u.Load(libraryRoot)
	if err != nil {
		return fmt.Errorf("no undo log found at %s: %w", path, err)
	}
	if len(ops) == 0 {
		return fmt.Errorf("undo log at %s is empty", path)
	}
	last := ops[len(ops)-1]

	for _, entry := range last.Entries {
		for _, written := range entry.Files {
			if _, err := os.Stat(written); err != nil {
				return fmt.Errorf("undo: %s is missing from its recorded target: %w", written, err)
			}
		}
	}

	for _, entry := range last.Entries {
		if err := os.MkdirAll(entry.SourcePath, 0o755); err != nil {
			return fmt.Errorf("recreate source directory %s: %w", entry.SourcePath, err)
		}
		for _, written := range entry.Files {
			rel, relErr := filepath.Rel(entry.TargetPath, written)
			if relErr != nil {
				rel = filepath.Base(written)
			}
			dst := filepath.Join(entry.SourcePath, rel)
			if mkErr := os.MkdirAll(filepath.Dir(dst), 0o755); mkErr != nil {
				u.log.Warn("undo: failed to recreate directory", zap.String("path", filepath.Dir(dst)), zap.Error(mkErr))
				continue
			}
			if err := os.Rename(written, dst); err != nil {
				u.log.Warn("undo: failed to restore file", zap.String("from", written), zap.String("to", dst), zap.Error(err))
			}
		}
	}

	ops = ops[:len(ops)-1]
	data, err := json.MarshalIndent(ops, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (u *UndoLog) resolvePath(libraryRoot string) string {
	if filepath.IsAbs(u.path) {
		return u.path
	}
	if u.path != "" {
		return filepath.Join(libraryRoot, u.path)
	}
	return filepath.Join(libraryRoot, DefaultUndoLogPath)
}
