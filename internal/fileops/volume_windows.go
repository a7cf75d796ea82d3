//go:build windows

package fileops

import (
	"os"
	"path/filepath"
)

// sameVolume reports whether a and b resolve to the same volume, by
// comparing the drive letter of their absolute paths. Good enough for the
// same-volume precondition HardLink's can_execute requires; Go's standard
// library exposes no portable volume-serial-number API.
func sameVolume(a, b string) (bool, error) {
	if _, err := os.Stat(a); err != nil {
		return false, err
	}
	if _, err := os.Stat(b); err != nil {
		return false, err
	}
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return filepath.VolumeName(absA) == filepath.VolumeName(absB), nil
}
