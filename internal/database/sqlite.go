package database

import (
	"fmt"

	sqlite "github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/uzeuro/association-api/internal/blob"
	"github.com/uzeuro/association-api/internal/contact"
	"github.com/uzeuro/association-api/internal/content"
	"github.com/uzeuro/association-api/internal/membership"
	"github.com/uzeuro/association-api/internal/registration"
	"github.com/uzeuro/association-api/internal/settings"
)

// OpenSQLite establishes a SQLite connection and performs schema migrations.
func OpenSQLite(path string, logger *zap.Logger) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&content.Event{},
		&content.Webinar{},
		&content.Publication{},
		&content.News{},
		&membership.Application{},
		&registration.WebinarRegistration{},
		&registration.EventRegistration{},
		&contact.Message{},
		&blob.Blob{},
		&settings.Setting{},
		&migrationRecord{},
	); err != nil {
		return nil, err
	}

	if err := applyMigrations(db, logger); err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("database initialized", zap.String("path", path))
	}

	return db, nil
}
