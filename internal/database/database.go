package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/syncit-hq/syncit-api/internal/config"
	"github.com/syncit-hq/syncit-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the single connection pool for the process. The handle is
// constructed once in main and injected everywhere; there is no package
// global.
func Connect(settings *config.Settings) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(settings.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected", "host", settings.DBHost, "database", settings.DBName)
	return db, nil
}

// Migrate runs AutoMigrate for all persisted models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.System{},
		&models.AppLog{},
	)
}

// Session returns a fresh logical session bound to the given request
// context. Connections are checked out from the pool per statement and
// returned when the request completes.
func Session(db *gorm.DB, ctx context.Context) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).WithContext(ctx)
}

// Ping checks raw connectivity to the database.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Health issues a trivial query inside its own transaction on a fresh
// session. Every failure, whatever the cause, maps to unhealthy and is
// never propagated to the caller.
func Health(db *gorm.DB) bool {
	session := db.Session(&gorm.Session{NewDB: true})
	err := session.Transaction(func(tx *gorm.DB) error {
		var one int
		if err := tx.Raw("SELECT 1").Scan(&one).Error; err != nil {
			return err
		}
		if one != 1 {
			return fmt.Errorf("unexpected probe result %d", one)
		}
		return nil
	})
	if err != nil {
		slog.Warn("database health probe failed", "error", err)
		return false
	}
	return true
}
