package organizer

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pavelvrba/bookorganizer/internal/fileops"
	"github.com/pavelvrba/bookorganizer/internal/model"
	"github.com/pavelvrba/bookorganizer/internal/pathgen"
)

func pathOptionsFor(opts Options) pathgen.Options {
	return pathgen.Options{PreserveDiacritics: opts.PreserveDiacritics}
}

// ReorganizeLibrary re-extracts every audiobook already inside
// libraryRoot (with source_root = libraryRoot, so hierarchical
// bookinfo.json overrides are honoured) and queues a Move plan for every
// book whose expected path differs case-insensitively from where it
// currently sits. It finishes with the deepest-first empty-directory
// sweep regardless of whether anything moved, since a prior partial run
// can leave stragglers.
func (o *Organizer) ReorganizeLibrary(ctx context.Context, libraryRoot string, opts Options) (RunResult, error) {
	folders, err := o.scan.Scan(ctx, libraryRoot, nil)
	if err != nil {
		return RunResult{}, err
	}

	// Extraction is read-only and independent per folder, so it fans out
	// across a bounded worker pool (spec §5); the subsequent path/
	// uniqueness resolution below stays strictly sequential in scan
	// order since ensure_unique_path's determinism requirement depends
	// on it.
	metas := make([]model.ConsolidatedMetadata, len(folders))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(extractWorkers())
	for i, f := range folders {
		i, f := i, f
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			metas[i] = o.extract.Extract(f, libraryRoot)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return RunResult{}, model.Wrap(model.ErrCancelled, libraryRoot, "metadata extraction cancelled", err)
	}

	var plans []model.OrganizationPlan
	var consideredFolders []model.AudiobookFolder
	pathOpts := pathOptionsFor(opts)
	existing := map[string]bool{}

	for i, f := range folders {
		meta := metas[i]
		book := meta.ToBookMetadata()

		// Read-through against the optional index: a book recorded at its
		// current location was settled by a previous run, so the pathgen
		// work can be skipped entirely. The index is advisory; a miss (or
		// no index at all) falls through to the full comparison.
		if recorded, hit := o.libIndex.Lookup(book.Author, book.Title); hit && strings.EqualFold(recorded, f.Path) {
			continue
		}

		expected := o.pathgen.Generate(libraryRoot, book, pathOpts)
		if strings.EqualFold(expected, f.Path) {
			if o.libIndex != nil {
				_ = o.libIndex.Record(book.Author, book.Title, f.Path)
			}
			continue
		}

		target := o.pathgen.GenerateUnique(libraryRoot, book, pathOpts, existing)
		existing[target] = true
		plans = append(plans, model.OrganizationPlan{
			SourceFolder: f.Path,
			Metadata:     meta,
			TargetPath:   target,
			Operation:    model.OpMove,
			LibraryRoot:  libraryRoot,
		})
		consideredFolders = append(consideredFolders, f)
	}

	result := RunResult{Plans: plans}
	if opts.DryRun {
		result.EmptyDirsRemoved, _ = findRemovableDirectories(libraryRoot)
		return result, nil
	}

	var undo *UndoOperation
	if o.undoLog != nil {
		undo = NewUndoOperation()
	}

	for i := range plans {
		execResult := o.executePlan(ctx, plans[i], consideredFolders[i], opts)
		result.Executions = append(result.Executions, execResult)
		if o.libIndex != nil && execResult.Success {
			book := plans[i].Metadata.ToBookMetadata()
			_ = o.libIndex.Record(book.Author, book.Title, plans[i].TargetPath)
		}
		if undo != nil && execResult.Success {
			undo.Entries = append(undo.Entries, UndoEntry{
				SourcePath: plans[i].SourceFolder, TargetPath: plans[i].TargetPath, Files: execResult.FilesWritten,
			})
		}
	}

	removed, err := CleanupEmptyDirectories(libraryRoot)
	if err != nil {
		o.log.Warn("organizer: empty-directory cleanup failed", zap.Error(err))
	}
	result.EmptyDirsRemoved = removed

	if undo != nil && len(undo.Entries) > 0 {
		if err := o.undoLog.Append(libraryRoot, *undo); err != nil {
			o.log.Warn("organizer: failed to write undo log", zap.Error(err))
		}
	}

	return result, nil
}

// publishedMarker is dropped into a source folder once Publish succeeds;
// is_published checks only for its presence.
const publishedMarker = ".published"

// Publish copies an organized book folder into publishedRoot using the
// same path layout, then drops a .published marker in sourceFolder on
// success. The copy skips dot-files; it is not itself checksum-validated,
// matching the peripheral, contract-only scope spec §4.8 gives Publish.
func (o *Organizer) Publish(ctx context.Context, sourceFolder, publishedRoot string, meta model.BookMetadata, opts Options) (string, error) {
	pathOpts := pathOptionsFor(opts)
	target := o.pathgen.Generate(publishedRoot, meta, pathOpts)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", model.Wrap(model.ErrIO, target, "create published directory", err)
	}

	err := filepath.Walk(sourceFolder, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(sourceFolder, path)
		if relErr != nil {
			return relErr
		}
		dst := filepath.Join(target, rel)
		if info.IsDir() {
			return os.MkdirAll(dst, 0o755)
		}
		select {
		case <-ctx.Done():
			return model.Kind(model.ErrCancelled)
		default:
		}
		result := o.fileops.Execute(fileops.Request{
			Source: path, Destination: dst, Operation: model.OpCopy, ValidateIntegrity: opts.ValidateIntegrity,
		})
		if !result.Success {
			return result.Err
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(sourceFolder, publishedMarker), nil, 0o644); err != nil {
		return target, model.Wrap(model.ErrIO, sourceFolder, "write published marker", err)
	}
	return target, nil
}

// IsPublished reports whether folder carries the .published marker.
func IsPublished(folder string) bool {
	_, err := os.Stat(filepath.Join(folder, publishedMarker))
	return err == nil
}
