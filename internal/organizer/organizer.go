// Package organizer wires the scanner, extractor, deduplication detector,
// path generator, and file operator into the two top-level entry points
// spec §4.8 describes: organising a fresh source tree into a library, and
// reorganising a library against itself.
package organizer

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pavelvrba/bookorganizer/internal/dedup"
	"github.com/pavelvrba/bookorganizer/internal/extractor"
	"github.com/pavelvrba/bookorganizer/internal/fileops"
	"github.com/pavelvrba/bookorganizer/internal/model"
	"github.com/pavelvrba/bookorganizer/internal/namedict"
	"github.com/pavelvrba/bookorganizer/internal/pathgen"
	"github.com/pavelvrba/bookorganizer/internal/scanner"
)

// extractWorkers bounds the fan-out across audiobooks during metadata
// extraction. Per spec §5 this parallelism is a permissible optimisation,
// not a correctness requirement: each goroutine only ever writes its own
// index of metas, so the final slice order matches scan order regardless
// of completion order.
func extractWorkers() int {
	if n := runtime.GOMAXPROCS(0); n > 1 {
		return n
	}
	return 1
}

// Options configures one run of the organizer; it is the operational
// subset of config.OrganizerConfig the core packages need, kept separate
// so internal/organizer never imports the viper-bound config package.
type Options struct {
	OutputDir          string
	Operation          model.OperationType
	PreserveDiacritics bool
	DetectDuplicates   bool
	ValidateIntegrity  bool
	DryRun             bool
	RemoveEmpty        bool
}

// Organizer is the orchestrator. It holds no per-run state; every entry
// point takes the source/library root explicitly so one Organizer can
// service multiple invocations.
type Organizer struct {
	log      *zap.Logger
	scan     *scanner.Scanner
	extract  *extractor.Extractor
	detector *dedup.Detector
	pathgen  *pathgen.Generator
	fileops  *fileops.Operator
	undoLog  *UndoLog
	libIndex *LibraryIndex
}

// New builds an Organizer. dict and libIndex may both be nil (no name
// dictionary, no SQLite read-through cache); a nil logger is replaced with
// zap's no-op logger.
func New(log *zap.Logger, dict *namedict.Dictionary, libIndex *LibraryIndex) *Organizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Organizer{
		log:      log,
		scan:     scanner.New(log),
		extract:  extractor.New(log, dict),
		detector: dedup.New(),
		pathgen:  pathgen.New(log),
		fileops:  fileops.New(log),
		libIndex: libIndex,
	}
}

// EnableUndoLog attaches an undo log so every subsequent organize/
// reorganize run records its moves for later undo. logPath may be empty
// to use DefaultUndoLogPath, relative to each run's library root.
func (o *Organizer) EnableUndoLog(logPath string) {
	o.undoLog = NewUndoLog(logPath, o.log)
}

// OrganizeFromSource runs the full organise-from-source pipeline of spec
// §4.8: scan, extract, plan, dedup, merge map, uniqueness, execute.
func (o *Organizer) OrganizeFromSource(ctx context.Context, sourceRoot, libraryRoot string, opts Options) (RunResult, error) {
	folders, err := o.scan.Scan(ctx, sourceRoot, nil)
	if err != nil {
		return RunResult{}, err
	}

	metas := make([]model.ConsolidatedMetadata, len(folders))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(extractWorkers())
	for i, f := range folders {
		i, f := i, f
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			metas[i] = o.extract.Extract(f, sourceRoot)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return RunResult{}, model.Wrap(model.ErrCancelled, sourceRoot, "metadata extraction cancelled", err)
	}

	plans := make([]model.OrganizationPlan, len(folders))
	for i, f := range folders {
		plans[i] = model.OrganizationPlan{
			SourceFolder: f.Path,
			Metadata:     metas[i],
			Operation:    opts.Operation,
			LibraryRoot:  libraryRoot,
		}
	}

	var candidates []model.DuplicationCandidate
	if opts.DetectDuplicates {
		bookMetas := make([]model.BookMetadata, len(folders))
		for i := range metas {
			bookMetas[i] = metas[i].ToBookMetadata()
		}
		candidates, err = o.detector.DetectWithinSource(folders, bookMetas)
		if err != nil {
			return RunResult{}, err
		}
	}

	pathOpts := pathOptionsFor(opts)

	// Raw (pre-uniqueness) target paths per source folder, used only to
	// decide the canonical side of a merge per spec §4.8 step 4 -- the
	// "target without a trailing (YYYY) suffix" rule is about the
	// generated path shape, not the source folder's own name.
	rawTargets := map[string]string{}
	for i := range plans {
		rawTargets[plans[i].SourceFolder] = o.pathgen.Generate(libraryRoot, metas[i].ToBookMetadata(), pathOpts)
	}
	mergeMap := buildMergeMap(candidates, rawTargets)
	existing := map[string]bool{}
	targetForSource := map[string]string{}

	// Canonical (non-merged-away) plans resolve their target path first,
	// so loser plans below can simply adopt the canonical's resolved
	// path instead of generating a second, colliding one.
	for i := range plans {
		if _, isLoser := mergeMap[plans[i].SourceFolder]; isLoser {
			continue
		}
		meta := metas[i].ToBookMetadata()
		plans[i].TargetPath = o.pathgen.GenerateUnique(libraryRoot, meta, pathOpts, existing)
		existing[plans[i].TargetPath] = true
		targetForSource[plans[i].SourceFolder] = plans[i].TargetPath
	}
	for i := range plans {
		canonicalSource, isLoser := mergeMap[plans[i].SourceFolder]
		if !isLoser {
			continue
		}
		if target, ok := targetForSource[canonicalSource]; ok {
			plans[i].TargetPath = target
			continue
		}
		// The canonical side of this pair was itself merged away into a
		// third folder (a merge chain); fall back to generating its own
		// unique path rather than leaving TargetPath empty.
		meta := metas[i].ToBookMetadata()
		plans[i].TargetPath = o.pathgen.GenerateUnique(libraryRoot, meta, pathOpts, existing)
		existing[plans[i].TargetPath] = true
	}

	result := RunResult{Plans: plans, DuplicateCandidates: candidates}
	if opts.DryRun {
		return result, nil
	}

	var undo *UndoOperation
	if o.undoLog != nil {
		undo = NewUndoOperation()
	}

	for i := range plans {
		folder := findFolder(folders, plans[i].SourceFolder)
		execResult := o.executePlan(ctx, plans[i], folder, opts)
		result.Executions = append(result.Executions, execResult)
		if undo != nil && execResult.Success {
			undo.Entries = append(undo.Entries, UndoEntry{
				SourcePath: plans[i].SourceFolder, TargetPath: plans[i].TargetPath, Files: execResult.FilesWritten,
			})
		}
	}

	if opts.RemoveEmpty {
		removed, err := CleanupEmptyDirectories(sourceRoot)
		if err != nil {
			o.log.Warn("organizer: empty-directory cleanup failed", zap.Error(err))
		}
		result.EmptyDirsRemoved = removed
	}

	if undo != nil && len(undo.Entries) > 0 {
		if err := o.undoLog.Append(libraryRoot, *undo); err != nil {
			o.log.Warn("organizer: failed to write undo log", zap.Error(err))
		}
	}

	return result, nil
}

// RunResult is everything one OrganizeFromSource/ReorganizeLibrary call
// produced, for the CLI adapter to report.
type RunResult struct {
	Plans               []model.OrganizationPlan
	DuplicateCandidates []model.DuplicationCandidate
	Executions          []PlanExecutionResult
	EmptyDirsRemoved    []string
}

func findFolder(folders []model.AudiobookFolder, path string) model.AudiobookFolder {
	for _, f := range folders {
		if f.Path == path {
			return f
		}
	}
	return model.AudiobookFolder{Path: path}
}

// buildMergeMap maps the losing source folder of every auto-mergeable
// candidate to its canonical source folder, per spec §4.8 step 4: the
// canonical side is the one whose target has no trailing "(YYYY)" year
// suffix; if both or neither qualify, the shorter path string wins. rawTargets supplies each source
// folder's not-yet-deduplicated generated path so the YYYY check runs
// against the target shape, not the source folder's own name. The
// canonical target's final, unique path is resolved later, at
// path-generation time -- this map only records which folder wins.
func buildMergeMap(candidates []model.DuplicationCandidate, rawTargets map[string]string) map[string]string {
	merge := map[string]string{}
	for _, c := range candidates {
		if !c.AutoMerge() {
			continue
		}
		canonicalTarget := canonicalFolder(rawTargets[c.FolderA], rawTargets[c.FolderB])
		canonicalSource, loserSource := c.FolderA, c.FolderB
		if canonicalTarget != rawTargets[c.FolderA] {
			canonicalSource, loserSource = c.FolderB, c.FolderA
		}
		merge[loserSource] = canonicalSource
	}
	return merge
}
