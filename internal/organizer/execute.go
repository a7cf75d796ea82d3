package organizer

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pavelvrba/bookorganizer/internal/fileops"
	"github.com/pavelvrba/bookorganizer/internal/model"
)

// PlanExecutionResult is the outcome of executing one OrganizationPlan:
// every file's individual FileOperationResult, plus the files successfully
// written to the target (for the undo log).
type PlanExecutionResult struct {
	SourceFolder string
	TargetPath   string
	Success      bool
	FilesWritten []string
	FileResults  []model.FileOperationResult
	Err          error
}

// executePlan materialises one plan: it creates the target directory,
// dispatches every source file to the file operator (preserving the
// multi-disc layout, or flattening with FilenameNormalizer applied when
// the folder is single-disc), and writes metadata.nfo on success. A
// single file's failure is logged and does not abort the remaining
// files; the plan as a whole succeeds only if every file succeeded.
func (o *Organizer) executePlan(ctx context.Context, plan model.OrganizationPlan, folder model.AudiobookFolder, opts Options) PlanExecutionResult {
	result := PlanExecutionResult{SourceFolder: plan.SourceFolder, TargetPath: plan.TargetPath, Success: true}

	if err := os.MkdirAll(plan.TargetPath, 0o755); err != nil {
		result.Success = false
		result.Err = model.Wrap(model.ErrIO, plan.TargetPath, "create target directory", err)
		return result
	}

	allFiles := append(append([]string{}, folder.AudioFiles...), folder.OtherFiles...)
	for _, src := range allFiles {
		select {
		case <-ctx.Done():
			result.Success = false
			result.Err = model.Kind(model.ErrCancelled)
			return result
		default:
		}

		dst := o.targetFileFor(folder, src, plan.TargetPath)
		fr := o.fileops.Execute(fileops.Request{
			Source:            src,
			Destination:       dst,
			Operation:         plan.Operation,
			ValidateIntegrity: opts.ValidateIntegrity,
		})
		result.FileResults = append(result.FileResults, fr)
		if fr.Success {
			result.FilesWritten = append(result.FilesWritten, dst)
		} else {
			result.Success = false
			o.log.Warn("organizer: file operation failed",
				zap.String("source", src), zap.String("destination", dst), zap.Error(fr.Err))
		}
	}

	if result.Success {
		if err := writeNFOIfAbsent(plan.TargetPath, plan.Metadata); err != nil {
			o.log.Warn("organizer: failed to write metadata.nfo", zap.String("path", plan.TargetPath), zap.Error(err))
		}
	}

	return result
}

// targetFileFor computes where one source file lands under targetRoot. A
// multi-disc folder preserves the path relative to the source folder
// (keeping its "Disc N" subfolder); a single-disc folder flattens to a
// normalized basename directly under targetRoot.
func (o *Organizer) targetFileFor(folder model.AudiobookFolder, src, targetRoot string) string {
	if folder.IsMultiDisc() {
		rel, err := filepath.Rel(folder.Path, src)
		if err != nil {
			rel = filepath.Base(src)
		}
		dst := filepath.Join(targetRoot, rel)
		_ = os.MkdirAll(filepath.Dir(dst), 0o755)
		return dst
	}
	return filepath.Join(targetRoot, NormalizeFilename(filepath.Base(src)))
}

// isMetadataArtifact reports whether name is one of the sidecar or
// housekeeping files the empty-directory sweep should disregard.
func isMetadataArtifact(name string) bool {
	switch strings.ToLower(name) {
	case "bookinfo.json", "metadata.json", "metadata.nfo", ".ds_store", "thumbs.db", "desktop.ini":
		return true
	default:
		return false
	}
}
