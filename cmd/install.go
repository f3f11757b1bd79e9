package cmd

import (
	"github.com/spf13/cobra"

	"runtime-setup/internal/config"
	"runtime-setup/internal/installer"
	"runtime-setup/internal/logger"
	"runtime-setup/internal/platform"
)

// installCmd is an explicit alias for the default action, kept so the
// pipeline can be named in scripts and help output.
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Download, verify and install the runtime bundle",
	RunE:  runInstall,
}

// runInstall drives the whole pipeline. The requirement check runs
// before anything else; platform resolution follows, and both complete
// before any filesystem or network mutation.
func runInstall(cmd *cobra.Command, args []string) error {
	if err := installer.CheckRequirements(); err != nil {
		logger.Error("[ERROR] %v\n", err)
		return err
	}

	key := platform.Detect()
	spec, err := platform.Resolve(key.OS, key.Arch)
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		return err
	}
	logger.Debug("[DEBUG] Resolved %s -> %s\n", key, spec.Filename)

	cfg := config.Load()
	inst, err := installer.New(cfg, spec, platform.Version)
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		return err
	}

	if err := inst.Run(cmd.Context()); err != nil {
		logger.Error("[ERROR] %v\n", err)
		return err
	}
	return nil
}
