package cmd

import (
	"fmt"
	"runtime"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Set at build time via -ldflags.
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildTime    = "unknown"
)

var versionShort bool

// formattedBuildTime renders the ldflags RFC3339 stamp human-readably,
// passing the raw value through when it doesn't parse.
func formattedBuildTime() string {
	t, err := time.Parse(time.RFC3339, buildTime)
	if err != nil {
		return buildTime
	}
	return t.Format("2006-01-02 15:04:05 MST")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if versionShort {
			fmt.Println(buildVersion)
			return
		}
		color.Cyan("bookorganizer %s", buildVersion)
		color.White("commit:  %s", buildCommit)
		color.White("built:   %s", formattedBuildTime())
		color.White("os/arch: %s/%s", runtime.GOOS, runtime.GOARCH)
		color.White("go:      %s", runtime.Version())
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "print only the version number")
	rootCmd.AddCommand(versionCmd)
}
