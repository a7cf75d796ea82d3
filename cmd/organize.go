package cmd

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var organizeCmd = &cobra.Command{
	Use:   "organize",
	Short: "Organize audiobooks from --dir into the library rooted at --out",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		opts := optionsFromConfig(cfg)

		org, closeIdx, err := buildOrganizer(cfg, cfg.OutputDir)
		if err != nil {
			return fail(err, ExitIOError)
		}
		defer closeIdx()

		result, err := org.OrganizeFromSource(context.Background(), cfg.SourceDir, cfg.OutputDir, opts)
		if err != nil {
			return fail(err, ExitIOError)
		}

		if opts.DryRun {
			for _, p := range result.Plans {
				color.Cyan("%s -> %s", p.SourceFolder, p.TargetPath)
			}
			return nil
		}

		failed := summarizeRun(result)
		if code := exitForRun(len(result.Executions), failed); code != ExitSuccess {
			setExit(code)
		}
		return nil
	},
}

func init() {
	addDirFlag(organizeCmd, "source directory holding unorganized audiobooks")
	addOutFlag(organizeCmd, "library root to organize into")
	addLayoutFlags(organizeCmd)
	rootCmd.AddCommand(organizeCmd)
}
