package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var reorganizeCmd = &cobra.Command{
	Use:   "reorganize",
	Short: "Re-extract metadata for every book already under --dir and move misplaced ones",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		opts := optionsFromConfig(cfg)

		org, closeIdx, err := buildOrganizer(cfg, cfg.SourceDir)
		if err != nil {
			return fail(err, ExitIOError)
		}
		defer closeIdx()

		result, err := org.ReorganizeLibrary(context.Background(), cfg.SourceDir, opts)
		if err != nil {
			return fail(err, ExitIOError)
		}

		failed := summarizeRun(result)
		if code := exitForRun(len(result.Executions), failed); code != ExitSuccess {
			setExit(code)
		}
		return nil
	},
}

func init() {
	addDirFlag(reorganizeCmd, "library root to reorganize in place")
	addLayoutFlags(reorganizeCmd)
	rootCmd.AddCommand(reorganizeCmd)
}
