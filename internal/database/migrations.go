package database

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/uzeuro/association-api/internal/registration"
)

const (
	migrationBackfillRegistrationStatus = "2026-08-10_backfill_registration_status"
	migrationScopeWebinarRegIndex       = "2026-08-31_scope_webinar_reg_unique_index"
)

type migrationRecord struct {
	Name             string `gorm:"column:name;primaryKey;size:190;not null"`
	AppliedAtSeconds int64  `gorm:"column:applied_at_s;not null"`
}

func (migrationRecord) TableName() string {
	return "db_migrations"
}

type migrationDefinition struct {
	name  string
	apply func(*gorm.DB) error
}

func applyMigrations(db *gorm.DB, logger *zap.Logger) error {
	migrations := []migrationDefinition{
		{name: migrationBackfillRegistrationStatus, apply: backfillRegistrationStatus},
		{name: migrationScopeWebinarRegIndex, apply: scopeWebinarRegistrationIndex},
	}

	for _, migration := range migrations {
		var record migrationRecord
		err := db.Where("name = ?", migration.name).Take(&record).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := migration.apply(db); err != nil {
			return err
		}
		appliedAt := time.Now().UTC().Unix()
		if err := db.Create(&migrationRecord{Name: migration.name, AppliedAtSeconds: appliedAt}).Error; err != nil {
			return err
		}
		if logger != nil {
			logger.Info("database migration applied", zap.String("migration", migration.name))
		}
	}
	return nil
}

// Rows imported from the previous deployment predate the status column.
func backfillRegistrationStatus(db *gorm.DB) error {
	return db.Model(&registration.WebinarRegistration{}).
		Where("status IS NULL OR status = ''").
		Update("status", registration.StatusRegistered).Error
}

// The duplicate gate only applies to registrations whose webinar resolved;
// rescope the unique index so rows recorded without a matching webinar may
// repeat. Rows predating the webinar_resolved column are marked resolved
// when their webinar still exists.
func scopeWebinarRegistrationIndex(db *gorm.DB) error {
	err := db.Exec(
		"UPDATE webinar_registrations SET webinar_resolved = 1 WHERE webinar_id IN (SELECT id FROM webinars)",
	).Error
	if err != nil {
		return err
	}
	if err := db.Exec("DROP INDEX IF EXISTS idx_webinar_reg_pair").Error; err != nil {
		return err
	}
	return db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_webinar_reg_pair ON webinar_registrations(webinar_id, email) WHERE webinar_resolved",
	).Error
}
