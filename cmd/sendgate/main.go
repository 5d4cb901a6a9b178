package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/sendgate/internal/cli"
	"github.com/example/sendgate/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "sendgate",
		Short:   "sendgate - hard-gate schedule validation and volume-trigger persistence",
		Version: version.String(),
		Long: `sendgate validates weekly content schedules against zero-tolerance hard
gates, issues tamper-evident validation certificates, and persists
volume-trigger detections idempotently by natural key.`,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.ValidateCmd())
	rootCmd.AddCommand(cli.TriggerCmd())
	rootCmd.AddCommand(cli.CreatorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
