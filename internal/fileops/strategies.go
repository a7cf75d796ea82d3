package fileops

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"

	"github.com/pavelvrba/bookorganizer/internal/model"
)

type copyStrategy struct{}

func (copyStrategy) canExecute(src, dst string) (bool, error) { return true, nil }

func (copyStrategy) execute(src, dst string, progress ProgressFunc, cancel CancelFunc) error {
	if err := streamCopy(src, dst, progress, cancel); err != nil {
		return err
	}
	return copyTimestamps(src, dst)
}

type moveStrategy struct{}

func (moveStrategy) canExecute(src, dst string) (bool, error) { return true, nil }

func (moveStrategy) execute(src, dst string, progress ProgressFunc, cancel CancelFunc) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	} else if !isCrossDevice(err) {
		return model.Wrap(model.ErrIO, src, "renaming file", err)
	}

	if err := streamCopy(src, dst, progress, cancel); err != nil {
		return err
	}
	if err := copyTimestamps(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return model.Wrap(model.ErrIO, src, "removing source after cross-device move", err)
	}
	return nil
}

func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		err = linkErr.Err
	}
	return errors.Is(err, syscall.EXDEV)
}

type hardLinkStrategy struct{}

func (hardLinkStrategy) canExecute(src, dst string) (bool, error) {
	sameVol, err := sameVolume(src, filepath.Dir(dst))
	if err != nil {
		return false, nil
	}
	return sameVol, nil
}

func (hardLinkStrategy) execute(src, dst string, progress ProgressFunc, cancel CancelFunc) error {
	sameVol, _ := sameVolume(src, filepath.Dir(dst))
	if !sameVol {
		return model.New(model.ErrUnsupportedOperation, src, "hard link requires source and destination on the same volume")
	}
	progress(StageTransferringFile, 0, 0)
	if err := os.Link(src, dst); err != nil {
		return model.Wrap(model.ErrIO, dst, "creating hard link", err)
	}
	return nil
}

type symlinkStrategy struct{}

func (symlinkStrategy) canExecute(src, dst string) (bool, error) { return true, nil }

func (symlinkStrategy) execute(src, dst string, progress ProgressFunc, cancel CancelFunc) error {
	progress(StageTransferringFile, 0, 0)
	if err := os.Symlink(src, dst); err != nil {
		if isWindows() && os.IsPermission(err) {
			return model.Wrap(model.ErrPermissionDenied, dst, "creating symbolic link requires elevated privileges or Developer Mode on Windows", err)
		}
		return model.Wrap(model.ErrIO, dst, "creating symbolic link", err)
	}
	return nil
}
