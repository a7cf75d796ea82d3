package cmd

import (
	"context"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pavelvrba/bookorganizer/internal/extractor"
	"github.com/pavelvrba/bookorganizer/internal/logging"
	"github.com/pavelvrba/bookorganizer/internal/model"
	"github.com/pavelvrba/bookorganizer/internal/namedict"
	"github.com/pavelvrba/bookorganizer/internal/organizer"
	"github.com/pavelvrba/bookorganizer/internal/scanner"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Copy one already-organized book at --dir to the published root --out",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		log := logging.Logger()

		folders, err := scanner.New(log).Scan(context.Background(), cfg.SourceDir, nil)
		if err != nil {
			return fail(err, ExitIOError)
		}
		if len(folders) == 0 {
			return fail(model.New(model.ErrNoAudioFiles, cfg.SourceDir, "no audio files found at --dir"), ExitInvalidArgs)
		}
		folder := folders[0]
		for _, f := range folders {
			if f.Path == cfg.SourceDir {
				folder = f
				break
			}
		}

		dict, _ := namedict.Load(filepath.Dir(cfg.SourceDir))
		consolidated := extractor.New(log, dict).Extract(folder, filepath.Dir(cfg.SourceDir))
		meta := consolidated.ToBookMetadata()

		opts := optionsFromConfig(cfg)
		org := organizer.New(log, dict, nil)

		target, err := org.Publish(context.Background(), folder.Path, cfg.OutputDir, meta, opts)
		if err != nil {
			return fail(err, ExitIOError)
		}
		color.Green("published to %s", target)
		return nil
	},
}

func init() {
	addDirFlag(publishCmd, "already-organized book folder to publish")
	addOutFlag(publishCmd, "published root directory")
	addLayoutFlags(publishCmd)
	rootCmd.AddCommand(publishCmd)
}
