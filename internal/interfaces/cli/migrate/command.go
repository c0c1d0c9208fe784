package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"quarters/internal/infrastructure/config"
	"quarters/internal/infrastructure/database"
	"quarters/internal/infrastructure/migration"
	"quarters/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including applying pending migrations, rolling back, and checking status.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Rollback the most recent migration",
		RunE:  runDown,
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func initEnv() (string, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return "", fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return "", fmt.Errorf("failed to initialize database: %w", err)
	}

	return migration.DialectFor(cfg.Database.Driver), nil
}

func runUp(cmd *cobra.Command, args []string) error {
	dialect, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	return migration.Up(database.Get(), dialect)
}

func runDown(cmd *cobra.Command, args []string) error {
	dialect, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	return migration.Down(database.Get(), dialect)
}

func runStatus(cmd *cobra.Command, args []string) error {
	dialect, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	return migration.Status(database.Get(), dialect)
}
