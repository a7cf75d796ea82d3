package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pavelvrba/bookorganizer/internal/logging"
	"github.com/pavelvrba/bookorganizer/internal/organizer"
)

// undoCmd reverses the most recent organize/reorganize run recorded in
// --dir's undo log, the CLI surface for the undo log supplemented feature.
var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Reverse the most recent organize/reorganize run recorded under --dir",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		log := organizer.NewUndoLog("", logging.Logger())
		if err := log.Undo(cfg.SourceDir); err != nil {
			return fail(err, ExitIOError)
		}
		color.Green("undo complete")
		return nil
	},
}

func init() {
	addDirFlag(undoCmd, "library root whose undo log should be reversed")
	rootCmd.AddCommand(undoCmd)
}
