package cmd

import (
	"fmt"
	"os"

	"gearsync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "gearsync",
	Short: "Gear Sync Service",
	Long: `Gear Sync keeps fishing gear deployments consistent between the
rmwHub gear registry and the local tracking platform. It can run as a
long-lived HTTP service or execute a single reconciliation pass.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with "debug" level gives ISO8601 timestamps,
		// which reads better for a CLI than the production epoch format.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
