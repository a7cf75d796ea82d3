package cmd

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pavelvrba/bookorganizer/internal/logging"
	"github.com/pavelvrba/bookorganizer/internal/scanner"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Discover audiobook folders under --dir without touching anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)

		folders, err := scanner.New(logging.Logger()).Scan(context.Background(), cfg.SourceDir, func(n int) {
			if cfg.Verbose {
				color.Cyan("  ...%d directories visited", n)
			}
		})
		if err != nil {
			return fail(err, ExitIOError)
		}

		var totalBytes int64
		for _, f := range folders {
			totalBytes += f.TotalAudioBytes
			if f.IsMultiDisc() {
				color.Green("%s (%d discs, %d audio files, %s)", f.Path, len(f.DiscSubfolders), len(f.AudioFiles), humanize.Bytes(uint64(f.TotalAudioBytes)))
				continue
			}
			color.Green("%s (%d audio files, %s)", f.Path, len(f.AudioFiles), humanize.Bytes(uint64(f.TotalAudioBytes)))
		}
		color.Cyan("%d audiobook folder(s) found, %s total", len(folders), humanize.Bytes(uint64(totalBytes)))
		return nil
	},
}

func init() {
	addDirFlag(scanCmd, "source directory to scan for audiobook folders")
	rootCmd.AddCommand(scanCmd)
}
