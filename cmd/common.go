package cmd

import (
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pavelvrba/bookorganizer/internal/config"
	"github.com/pavelvrba/bookorganizer/internal/logging"
	"github.com/pavelvrba/bookorganizer/internal/model"
	"github.com/pavelvrba/bookorganizer/internal/namedict"
	"github.com/pavelvrba/bookorganizer/internal/organizer"
)

// operationFromString maps the validated config string to its
// model.OperationType; config.normalizeOperation already guarantees one
// of these four values.
func operationFromString(op string) model.OperationType {
	switch op {
	case "move":
		return model.OpMove
	case "hard_link":
		return model.OpHardLink
	case "symbolic_link":
		return model.OpSymbolicLink
	default:
		return model.OpCopy
	}
}

// addLayoutFlags registers the flags shared by every organize-shaped
// subcommand (organize, reorganize, publish), bound into v under the same
// keys internal/config.FromViper reads.
func addLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().String("operation", "copy", "transfer strategy: copy, move, hard_link, symbolic_link")
	cmd.Flags().Bool("preserve-diacritics", false, "keep diacritics in generated path components")
	cmd.Flags().Bool("detect-duplicates", false, "run deduplication detection before planning")
	cmd.Flags().Bool("validate-integrity", false, "checksum-validate every file transfer")
	cmd.Flags().Bool("remove-empty", false, "remove empty source directories after organizing")
	cmd.Flags().Bool("dry-run", false, "print the plan without touching the filesystem")
	cmd.Flags().String("library-index-path", "", "optional path to a SQLite library-index cache")
	for _, name := range []string{
		"operation", "preserve-diacritics",
		"detect-duplicates", "validate-integrity", "remove-empty", "dry-run", "library-index-path",
	} {
		v.BindPFlag(name, cmd.Flags().Lookup(name))
	}
}

// addDirFlag registers --dir with a usage string tailored to what the
// calling subcommand treats it as (a source root, a library root, ...).
func addDirFlag(cmd *cobra.Command, usage string) {
	cmd.Flags().String("dir", "", usage)
	cmd.MarkFlagRequired("dir")
}

// addOutFlag registers --out with a usage string tailored to what the
// calling subcommand treats it as (a library root, a publish root, ...).
func addOutFlag(cmd *cobra.Command, usage string) {
	cmd.Flags().String("out", "", usage)
	cmd.MarkFlagRequired("out")
}

// loadConfig binds --dir/--out and materializes the OrganizerConfig every
// subcommand needs.
func loadConfig(cmd *cobra.Command) config.OrganizerConfig {
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		v.Set("source-dir", dir)
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		v.Set("output-dir", out)
	}
	return config.FromViper(v)
}

// buildOrganizer constructs an internal/organizer.Organizer wired from
// cfg. libraryRoot is where namedict.json lives -- the output directory
// for organize/preview, the directory being reorganized for reorganize --
// and the optional name dictionary and SQLite library index are both
// opened lazily and degrade to nil, with a logged warning, when
// unavailable, matching their advisory role in spec.md §9.
func buildOrganizer(cfg config.OrganizerConfig, libraryRoot string) (*organizer.Organizer, func(), error) {
	log := logging.Logger()

	var dict *namedict.Dictionary
	if libraryRoot != "" {
		if d, err := namedict.Load(libraryRoot); err == nil {
			dict = d
		} else {
			log.Warn("failed to load name dictionary", zap.Error(err))
		}
	}

	var idx *organizer.LibraryIndex
	closeIdx := func() {}
	if cfg.LibraryIndexPath != "" {
		opened, err := organizer.OpenLibraryIndex(cfg.LibraryIndexPath)
		if err != nil {
			log.Warn("failed to open library index, continuing without it", zap.Error(err))
		} else {
			idx = opened
			closeIdx = func() { _ = opened.Close() }
		}
	}

	org := organizer.New(log, dict, idx)
	org.EnableUndoLog("")
	return org, closeIdx, nil
}

// optionsFromConfig narrows an OrganizerConfig down to organizer.Options.
func optionsFromConfig(cfg config.OrganizerConfig) organizer.Options {
	return organizer.Options{
		OutputDir:          cfg.OutputDir,
		Operation:          operationFromString(cfg.Operation),
		PreserveDiacritics: cfg.PreserveDiacritics,
		DetectDuplicates:   cfg.DetectDuplicates,
		ValidateIntegrity:  cfg.ValidateIntegrity,
		DryRun:             cfg.DryRun,
		RemoveEmpty:        cfg.RemoveEmpty,
	}
}

func summarizeRun(result organizer.RunResult) (failed int) {
	var totalBytes int64
	for _, ex := range result.Executions {
		if !ex.Success {
			failed++
			color.Red("  ✗ %s", ex.SourceFolder)
			if ex.Err != nil {
				color.Red("      %v", ex.Err)
			}
			continue
		}
		for _, fr := range ex.FileResults {
			if fr.Success {
				totalBytes += fr.SizeBytes
			}
		}
		color.Green("  ✓ %s -> %s", ex.SourceFolder, ex.TargetPath)
	}
	if len(result.DuplicateCandidates) > 0 {
		color.Yellow("found %d duplicate candidate(s)", len(result.DuplicateCandidates))
	}
	if len(result.EmptyDirsRemoved) > 0 {
		color.Cyan("removed %d empty director(ies)", len(result.EmptyDirsRemoved))
	}
	if totalBytes > 0 {
		color.Cyan("transferred %s", humanize.Bytes(uint64(totalBytes)))
	}
	return failed
}

func exitForRun(total, failed int) int {
	if failed == 0 {
		return ExitSuccess
	}
	return ExitPartialFailure
}
