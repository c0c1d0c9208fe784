// Package migration applies schema migrations with goose. Migration SQL is
// embedded so the binary is self-contained.
package migration

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	appLogger "quarters/internal/shared/logger"
)

//go:embed scripts/*.sql
var migrationFS embed.FS

// DialectFor maps a gorm driver name to the goose dialect name.
func DialectFor(driver string) string {
	if driver == "sqlite" {
		return "sqlite3"
	}
	return driver
}

// Up applies all pending migrations.
func Up(db *gorm.DB, dialect string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(migrationFS)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.Up(sqlDB, "scripts"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	appLogger.Info("migrations applied")
	return nil
}

// Down rolls back the most recent migration.
func Down(db *gorm.DB, dialect string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(migrationFS)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.Down(sqlDB, "scripts"); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	appLogger.Info("migration rolled back")
	return nil
}

// Status prints the migration status.
func Status(db *gorm.DB, dialect string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(migrationFS)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	return goose.Status(sqlDB, "scripts")
}
