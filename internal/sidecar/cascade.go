package sidecar

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pavelvrba/bookorganizer/internal/model"
)

// BuildChain walks from bookFolder upward to, but not including, sourceRoot,
// loading a sidecar override at each level. Levels count from the shallow
// end (see assignLevels): the first folder below sourceRoot is level 0
// (author), the next is level 1 (series), and every deeper folder is
// clamped to level 2 (book). The returned slice is ordered shallowest (author) to deepest (book).
func BuildChain(sourceRoot, bookFolder string, log *zap.Logger) []*model.HierarchicalMetadata {
	if log == nil {
		log = zap.NewNop()
	}

	var folders []string
	cur := filepath.Clean(bookFolder)
	root := filepath.Clean(sourceRoot)
	for cur != root && cur != "." && cur != string(filepath.Separator) {
		folders = append(folders, cur)
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}
	// folders is deepest-first; reverse to shallowest-first.
	for i, j := 0, len(folders)-1; i < j; i, j = i+1, j-1 {
		folders[i], folders[j] = folders[j], folders[i]
	}

	depth := len(folders)
	chain := make([]*model.HierarchicalMetadata, 0, depth)
	var parent *model.HierarchicalMetadata
	for _, folder := range folders {
		override, err := Load(folder, log)
		if err != nil {
			log.Warn("sidecar: failed to load level", zap.String("folder", folder), zap.Error(err))
		}
		node := &model.HierarchicalMetadata{
			FolderPath: folder,
			Override:   override,
			Parent:     parent,
		}
		chain = append(chain, node)
		parent = node
	}

	assignLevels(chain)
	return chain
}

// assignLevels sets Level counting from the shallow (author) end: 0 for
// the shallowest entry, 1 for the next, 2 for the book folder, and 2 again
// for anything deeper still (clamped).
func assignLevels(chain []*model.HierarchicalMetadata) {
	for i, node := range chain {
		if i >= 2 {
			node.Level = 2
		} else {
			node.Level = i
		}
	}
}

// anyManualAncestor reports whether any node at or above (shallower than
// or equal to) upToIndex in chain is labelled manual.
func anyManualAncestor(chain []*model.HierarchicalMetadata, upToIndex int) bool {
	for i := 0; i <= upToIndex; i++ {
		if chain[i].Override.IsManual() {
			return true
		}
	}
	return false
}

// Evaluate walks the chain from author level downward, overlaying each
// level's non-null fields onto the effective record accumulated so far,
// subject to the manual lock: a child may override a parent field only if
// no ancestor in the chain (through the parent) is manual, or the child
// itself is manual.
func Evaluate(chain []*model.HierarchicalMetadata) *model.MetadataOverride {
	effective := &model.MetadataOverride{}
	for i, node := range chain {
		if node.Override == nil {
			continue
		}
		lockedByAncestor := i > 0 && anyManualAncestor(chain, i-1)
		if lockedByAncestor && !node.Override.IsManual() {
			continue
		}
		overlay(effective, node.Override)
		if node.Override.IsManual() {
			effective.Source = "manual"
		}
	}
	return effective
}

func overlay(dst, src *model.MetadataOverride) {
	if src.Title != nil {
		dst.Title = src.Title
	}
	if src.Author != nil {
		dst.Author = src.Author
	}
	if src.Series != nil {
		dst.Series = src.Series
	}
	if src.SeriesNumber != nil {
		dst.SeriesNumber = src.SeriesNumber
	}
	if src.Narrator != nil {
		dst.Narrator = src.Narrator
	}
	if src.Year != nil {
		dst.Year = src.Year
	}
	if src.DiscNumber != nil {
		dst.DiscNumber = src.DiscNumber
	}
	if src.Genre != nil {
		dst.Genre = src.Genre
	}
	if src.Description != nil {
		dst.Description = src.Description
	}
	if src.Language != nil {
		dst.Language = src.Language
	}
	if src.Comment != nil {
		dst.Comment = src.Comment
	}
}
