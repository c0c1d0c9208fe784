package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"quarters/internal/application/notification"
	"quarters/internal/domain/shared/events"
	"quarters/internal/domain/workorder"
	"quarters/internal/infrastructure/config"
	"quarters/internal/infrastructure/database"
	"quarters/internal/infrastructure/directory"
	"quarters/internal/infrastructure/email"
	"quarters/internal/infrastructure/migration"
	httpRouter "quarters/internal/interfaces/http"
	"quarters/internal/shared/logger"
	"quarters/internal/shared/services/markdown"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Quarters HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server",
		"environment", env,
		"auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
	}

	if err := database.Init(&cfg.Database); err != nil {
		logger.Error("failed to initialize database", "error", err)
		return err
	}
	defer database.Close()

	if autoMigrate {
		if env == "production" {
			logger.Warn("auto-migration is enabled in production environment - this is not recommended!")
		}
		if err := migration.Up(database.Get(), migration.DialectFor(cfg.Database.Driver)); err != nil {
			logger.Error("auto-migration failed", "error", err)
			return err
		}
	}

	dispatcher := events.NewInMemoryEventDispatcher(100, logger.NewLogger())
	if err := dispatcher.Start(); err != nil {
		logger.Error("failed to start event dispatcher", "error", err)
		return err
	}
	defer func() {
		if err := dispatcher.Stop(); err != nil {
			logger.Error("failed to stop event dispatcher", "error", err)
		}
	}()
	logger.Info("event dispatcher started")

	if cfg.Notification.Enabled {
		if err := subscribeNotifications(dispatcher, cfg); err != nil {
			logger.Error("failed to subscribe notification listener", "error", err)
			return err
		}
		logger.Info("work order notifications enabled",
			"staff_addresses", len(cfg.Notification.StaffAddresses))
	}

	router, err := httpRouter.NewRouter(database.Get(), dispatcher, cfg, logger.NewLogger())
	if err != nil {
		logger.Error("failed to build router", "error", err)
		return err
	}
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

// subscribeNotifications registers the email listener for every work order
// lifecycle event type.
func subscribeNotifications(dispatcher *events.InMemoryEventDispatcher, cfg *config.Config) error {
	listener := notification.NewWorkOrderListener(
		email.NewSMTPSender(cfg.Email),
		directory.NewGormDirectory(database.Get()),
		markdown.NewService(),
		cfg.Notification.StaffAddresses,
		logger.NewLogger(),
	)

	eventTypes := []string{
		workorder.EventCreated,
		workorder.EventApproved,
		workorder.EventQuoteProvided,
		workorder.EventQuoteRejected,
		workorder.EventRejected,
		workorder.EventStarted,
		workorder.EventCompleted,
		workorder.EventSignedOff,
	}
	for _, eventType := range eventTypes {
		if err := dispatcher.Subscribe(eventType, listener); err != nil {
			return err
		}
	}
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
