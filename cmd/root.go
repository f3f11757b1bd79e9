package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"runtime-setup/internal/logger"
)

// debug indicates whether debug logging should be enabled.
// It is toggled via the `--debug` command-line flag.
var debug bool

// rootCmd is the base command for the `runtime-setup` CLI. Invoking the
// tool with no arguments runs the full install pipeline; behavior is
// otherwise entirely environment-driven.
var rootCmd = &cobra.Command{
	Use:   "runtime-setup",
	Short: "Install the sprout runtime for this machine",

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},

	RunE: runInstall,

	// Fatal conditions are reported through the colored logger; cobra
	// must not print them a second time.
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute registers flags and subcommands and runs the CLI. The process
// exits 0 on success and 1 on any fatal condition.
func Execute() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(installCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
