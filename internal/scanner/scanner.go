// Package scanner discovers audiobook folders under a source root: a
// directory holding audio files directly, or aggregating audio files from
// recognised multi-disc subfolders.
package scanner

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/pavelvrba/bookorganizer/internal/model"
)

// SupportedExtensions are the audio file extensions that make a directory
// an audiobook folder, matched case-insensitively.
var SupportedExtensions = map[string]bool{
	".mp3": true, ".m4a": true, ".m4b": true, ".flac": true,
	".aac": true, ".ogg": true, ".opus": true, ".wma": true,
}

var discSubfolderPattern = regexp.MustCompile(`(?i)^(disc|disk|cd)\s*\d+$`)

// ProgressFunc is invoked roughly every 10 directories visited.
type ProgressFunc func(directoriesVisited int)

// Scanner discovers audiobook folders under a root directory.
type Scanner struct {
	log *zap.Logger
}

// New builds a Scanner. A nil logger is replaced with zap's no-op logger.
func New(log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{log: log}
}

// Scan walks root recursively and returns every directory that qualifies
// as an audiobook folder. It never descends into hidden directories
// (basename starting with '.'). Individual directory errors are logged and
// skipped; only a missing root fails the whole scan.
func (s *Scanner) Scan(ctx context.Context, root string, progress ProgressFunc) ([]model.AudiobookFolder, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, model.Wrap(model.ErrSourceNotFound, root, "source root does not exist", err)
	}

	var folders []model.AudiobookFolder
	discChildren := map[string]bool{} // absolute disc-subfolder paths already folded into a parent
	visited := 0

	var walk func(dir string) error
	walk = func(dir string) error {
		select {
		case <-ctx.Done():
			return model.New(model.ErrCancelled, dir, "scan cancelled")
		default:
		}

		visited++
		if progress != nil && visited%10 == 0 {
			progress(visited)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			s.log.Warn("scan: cannot read directory", zap.String("path", dir), zap.Error(err))
			return nil
		}

		var subdirs []os.DirEntry
		var audioFiles, otherFiles []string
		var discDirs []string

		for _, e := range entries {
			name := e.Name()
			if e.IsDir() {
				if strings.HasPrefix(name, ".") {
					continue
				}
				subdirs = append(subdirs, e)
				if discSubfolderPattern.MatchString(name) {
					full := filepath.Join(dir, name)
					if dirHasAudio(full) {
						discDirs = append(discDirs, name)
					}
				}
				continue
			}
			full := filepath.Join(dir, name)
			if isAudioExt(name) {
				audioFiles = append(audioFiles, full)
			} else {
				otherFiles = append(otherFiles, full)
			}
		}

		if discSubfolderPattern.MatchString(filepath.Base(dir)) && discChildren[dir] {
			// Already folded into a multi-disc parent; don't report it again,
			// but still recurse so nested folders beneath it (if any) are seen.
		} else if len(audioFiles) > 0 || len(discDirs) > 0 {
			folder := model.AudiobookFolder{Path: dir}
			sort.Slice(discDirs, func(i, j int) bool {
				return strings.ToLower(discDirs[i]) < strings.ToLower(discDirs[j])
			})
			folder.DiscSubfolders = discDirs
			folder.AudioFiles = append(folder.AudioFiles, audioFiles...)
			folder.OtherFiles = append(folder.OtherFiles, otherFiles...)

			for _, discName := range discDirs {
				discPath := filepath.Join(dir, discName)
				discChildren[discPath] = true
				discEntries, err := os.ReadDir(discPath)
				if err != nil {
					s.log.Warn("scan: cannot read disc subfolder", zap.String("path", discPath), zap.Error(err))
					continue
				}
				for _, de := range discEntries {
					if de.IsDir() {
						continue
					}
					full := filepath.Join(discPath, de.Name())
					if isAudioExt(de.Name()) {
						folder.AudioFiles = append(folder.AudioFiles, full)
					} else {
						folder.OtherFiles = append(folder.OtherFiles, full)
					}
				}
			}

			folder.TotalAudioBytes = sumSizes(s.log, folder.AudioFiles)
			folders = append(folders, folder)
		}

		for _, e := range subdirs {
			if err := walk(filepath.Join(dir, e.Name())); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(root); err != nil {
		return nil, err
	}
	return folders, nil
}

func isAudioExt(name string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(name))]
}

func dirHasAudio(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() && isAudioExt(e.Name()) {
			return true
		}
	}
	return false
}

func sumSizes(log *zap.Logger, files []string) int64 {
	var total int64
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			log.Warn("scan: stat failed, contributing 0 bytes", zap.String("path", f), zap.Error(err))
			continue
		}
		total += info.Size()
	}
	return total
}
