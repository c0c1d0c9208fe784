package main

import (
	"os"

	"github.com/spf13/cobra"

	"quarters/internal/interfaces/cli/migrate"
	"quarters/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "quarters",
		Short: "Quarters - property maintenance work order service",
		Long:  `Quarters is the maintenance portal backend: tenants raise work orders, staff triage and complete them, and tenants sign the work off.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
