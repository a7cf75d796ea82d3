package organizer

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CleanupEmptyDirectories repeatedly removes, deepest-first, any directory
// under root that is empty or contains only metadata/housekeeping
// artifacts (spec §4.8 step 5). It keeps sweeping until a full pass
// removes nothing, since removing a leaf can make its parent eligible.
// It returns every directory removed, in removal order.
func CleanupEmptyDirectories(root string) ([]string, error) {
	var removed []string
	for {
		candidates, err := findRemovableDirectories(root)
		if err != nil {
			return removed, err
		}
		if len(candidates) == 0 {
			return removed, nil
		}
		progressed := false
		for _, dir := range candidates {
			if err := os.RemoveAll(dir); err != nil {
				continue
			}
			removed = append(removed, dir)
			progressed = true
		}
		if !progressed {
			return removed, nil
		}
	}
}

// findRemovableDirectories walks root and returns every subdirectory
// (root itself excluded) whose contents are empty or entirely metadata
// artifacts, deepest (most path separators) first so children are
// removed before their parents within one pass.
func findRemovableDirectories(root string) ([]string, error) {
	var dirs []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() || path == root {
			return nil
		}
		entries, readErr := os.ReadDir(path)
		if readErr != nil {
			return nil
		}
		for _, e := range entries {
			if e.IsDir() {
				return nil
			}
			if !isMetadataArtifact(e.Name()) {
				return nil
			}
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(dirs, func(i, j int) bool {
		return strings.Count(dirs[i], string(filepath.Separator)) > strings.Count(dirs[j], string(filepath.Separator))
	})
	return dirs, nil
}
