package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pavelvrba/bookorganizer/internal/extractor"
	"github.com/pavelvrba/bookorganizer/internal/logging"
	"github.com/pavelvrba/bookorganizer/internal/namedict"
	"github.com/pavelvrba/bookorganizer/internal/scanner"
)

// exportMetadataFileName is the JSON document written per audiobook,
// distinct from metadata.json (the sidecar override a book folder already
// carries) so a repeated export never disturbs the organize-time cascade.
const exportMetadataFileName = "consolidated-metadata.json"

var exportMetadataCmd = &cobra.Command{
	Use:   "export-metadata",
	Short: "Write one consolidated metadata JSON document per audiobook under --dir",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		log := logging.Logger()

		folders, err := scanner.New(log).Scan(context.Background(), cfg.SourceDir, nil)
		if err != nil {
			return fail(err, ExitIOError)
		}

		dict, _ := namedict.Load(cfg.SourceDir)
		ex := extractor.New(log, dict)

		written, failed := 0, 0
		for _, f := range folders {
			meta := ex.Extract(f, cfg.SourceDir)
			data, err := json.MarshalIndent(meta, "", "  ")
			if err != nil {
				failed++
				color.Red("  ✗ %s: %v", f.Path, err)
				continue
			}
			dst := filepath.Join(f.Path, exportMetadataFileName)
			if err := os.WriteFile(dst, data, 0o644); err != nil {
				failed++
				color.Red("  ✗ %s: %v", f.Path, err)
				continue
			}
			written++
			color.Green("  ✓ %s", dst)
		}

		color.Cyan("%d document(s) written", written)
		if failed > 0 {
			setExit(exitForRun(len(folders), failed))
		}
		return nil
	},
}

func init() {
	addDirFlag(exportMetadataCmd, "library root to export consolidated metadata from")
	rootCmd.AddCommand(exportMetadataCmd)
}
