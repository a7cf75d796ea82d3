// Package fileops implements the four file-transfer strategies and the
// orchestrated, integrity-validated `execute_file_operation` call of
// spec §4.7.
package fileops

import (
	"io"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"

	"github.com/pavelvrba/bookorganizer/internal/checksum"
	"github.com/pavelvrba/bookorganizer/internal/model"
)

// Stage is one step of the per-file operation state machine (spec §4.12).
type Stage string

const (
	StagePreparing                   Stage = "preparing"
	StageCalculatingSourceChecksum   Stage = "calculating_source_checksum"
	StageTransferringFile            Stage = "transferring_file"
	StageCalculatingDestinationChecksum Stage = "calculating_destination_checksum"
	StageValidatingIntegrity         Stage = "validating_integrity"
	StageCleaningUp                  Stage = "cleaning_up"
	StageCompleted                   Stage = "completed"
)

// ProgressFunc is invoked as the operation advances through its stages;
// transferred/total are only meaningful during StageTransferringFile.
type ProgressFunc func(stage Stage, transferred, total int64)

func noopProgress(Stage, int64, int64) {}

// CancelFunc reports whether the caller has asked for cancellation; checked
// between streaming chunks and between stages.
type CancelFunc func() bool

func noCancel() bool { return false }

// strategy is the per-operation-type transfer contract.
type strategy interface {
	canExecute(src, dst string) (bool, error)
	execute(src, dst string, progress ProgressFunc, cancel CancelFunc) error
}

// Operator dispatches to one of the four strategies and wraps the call
// with the shared preflight, optional integrity validation, and result
// assembly spec §4.7 describes.
type Operator struct {
	log        *zap.Logger
	strategies map[model.OperationType]strategy
}

// New builds an Operator. A nil logger is replaced with zap's no-op logger.
func New(log *zap.Logger) *Operator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Operator{
		log: log,
		strategies: map[model.OperationType]strategy{
			model.OpCopy:         copyStrategy{},
			model.OpMove:         moveStrategy{},
			model.OpHardLink:     hardLinkStrategy{},
			model.OpSymbolicLink: symlinkStrategy{},
		},
	}
}

// preflight checks the shared precondition every strategy requires: src
// exists as a regular file, and dst's parent directory exists (creating it
// recursively if not).
func preflight(src, dst string) error {
	st, err := os.Stat(src)
	if err != nil {
		return model.Wrap(model.ErrFileNotFound, src, "source file not found", err)
	}
	if !st.Mode().IsRegular() {
		return model.New(model.ErrFileNotFound, src, "source is not a regular file")
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return model.Wrap(model.ErrIO, dst, "creating destination directory", err)
	}
	return nil
}

// copyTimestamps preserves mtime/atime from src onto dst. ctime cannot be
// set directly on any platform Go's standard library targets; spec's
// "copy ctime" requirement degrades silently to "best effort" here, which
// matches every platform's own copy-tool behaviour.
func copyTimestamps(src, dst string) error {
	st, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.Chtimes(dst, st.ModTime(), st.ModTime())
}

func streamCopy(src, dst string, progress ProgressFunc, cancel CancelFunc) error {
	in, err := os.Open(src)
	if err != nil {
		return model.Wrap(model.ErrIO, src, "opening source", err)
	}
	defer in.Close()

	st, _ := in.Stat()
	var total int64
	if st != nil {
		total = st.Size()
	}

	out, err := os.Create(dst)
	if err != nil {
		return model.Wrap(model.ErrIO, dst, "creating destination", err)
	}
	defer out.Close()

	buf := make([]byte, checksum.BufferSize)
	var transferred int64
	for {
		if cancel() {
			return model.New(model.ErrCancelled, src, "copy cancelled")
		}
		n, readErr := in.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				return model.Wrap(model.ErrIO, dst, "writing destination", writeErr)
			}
			transferred += int64(n)
			progress(StageTransferringFile, transferred, total)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return model.Wrap(model.ErrIO, src, "reading source", readErr)
		}
	}
	if err := out.Sync(); err != nil {
		return model.Wrap(model.ErrIO, dst, "flushing destination", err)
	}
	return nil
}

func isWindows() bool { return runtime.GOOS == "windows" }
