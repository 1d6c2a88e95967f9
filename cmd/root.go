package cmd

import (
	"fmt"
	"os"

	"brother-bridge/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "brother-bridge",
	Short: "Brother label printing bridge",
	Long: `Brother-bridge drives Brother QL and PT label printers over the
network, USB or a device node. It keeps the printer registry, renders and
converts label images, and exposes everything over an HTTP API for host
platforms like InvenTree.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with debug level so CLI errors come out
		// readable with ISO8601 timestamps.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
