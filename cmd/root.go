package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/pavelvrba/bookorganizer/internal/config"
	"github.com/pavelvrba/bookorganizer/internal/logging"
)

// Exit codes per the CLI surface's contract.
const (
	ExitSuccess        = 0
	ExitPartialFailure = 1
	ExitInvalidArgs    = 2
	ExitIOError        = 3
	ExitCancelled      = 130
)

var cfgFile string

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "bookorganizer",
	Short: "Organize audiobooks by consolidated metadata",
}

// Execute runs the root command; main.go's os.Exit uses its return value
// as the process exit code.
func Execute() int {
	color.Cyan("📚 bookorganizer")
	if err := rootCmd.Execute(); err != nil {
		return ExitInvalidArgs
	}
	return exitCode
}

// exitCode is set by each subcommand's RunE before returning, since cobra
// itself only distinguishes "error" from "no error".
var exitCode = ExitSuccess

func setExit(code int) { exitCode = code }

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.bookorganizer.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")
	v.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".bookorganizer")
	}

	if err := v.ReadInConfig(); err == nil && v.GetBool("verbose") {
		color.Cyan("using config file: %s", v.ConfigFileUsed())
	}

	config.BindEnv(v)

	lvl, ok := logging.ParseLogLevel(v.GetString("log-level"))
	if !ok {
		lvl = zapcore.InfoLevel
	}
	logging.SetLevel(lvl)
}

// printFailure reports err to the user; the exit code is chosen by the
// caller of fail.
func printFailure(err error) {
	color.Red("❌ %v", err)
}

// fail prints err and records exitCode for Execute to return.
func fail(err error, code int) error {
	printFailure(err)
	setExit(code)
	return nil // already reported; don't let cobra print it again
}
