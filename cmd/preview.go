package cmd

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// previewCmd runs the same planning pipeline as organize but always in
// dry-run mode: OrganizeFromSource returns after planning, so the undo log
// buildOrganizer attaches is never written.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the plan organize would execute, without touching the filesystem",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		opts := optionsFromConfig(cfg)
		opts.DryRun = true

		org, closeIdx, err := buildOrganizer(cfg, cfg.OutputDir)
		if err != nil {
			return fail(err, ExitIOError)
		}
		defer closeIdx()

		result, err := org.OrganizeFromSource(context.Background(), cfg.SourceDir, cfg.OutputDir, opts)
		if err != nil {
			return fail(err, ExitIOError)
		}

		for _, p := range result.Plans {
			color.Cyan("%s -> %s", p.SourceFolder, p.TargetPath)
		}
		if len(result.DuplicateCandidates) > 0 {
			color.Yellow("found %d duplicate candidate(s)", len(result.DuplicateCandidates))
		}
		color.Cyan("%d plan(s)", len(result.Plans))
		return nil
	},
}

func init() {
	addDirFlag(previewCmd, "source directory holding unorganized audiobooks")
	addOutFlag(previewCmd, "library root to organize into")
	addLayoutFlags(previewCmd)
	rootCmd.AddCommand(previewCmd)
}
