package settings

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errMissingDatabase = errors.New("database handle is required")

// Setting is one key→value entry of the site configuration store.
type Setting struct {
	Key       string    `gorm:"column:key;primaryKey;size:190" json:"key"`
	Value     string    `gorm:"column:value;type:text" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName provides the explicit table binding for GORM.
func (Setting) TableName() string {
	return "settings"
}

// ServiceConfig describes the dependencies of the settings service.
type ServiceConfig struct {
	Database *gorm.DB
	Logger   *zap.Logger
}

// Service exposes the upsert-only settings store.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService constructs the settings service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Database == nil {
		return nil, errMissingDatabase
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: cfg.Database, logger: logger}, nil
}

// All returns every setting as a flattened key→value map.
func (s *Service) All(ctx context.Context) (map[string]string, error) {
	var rows []Setting
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		s.logger.Error("settings read failed", zap.Error(err))
		return nil, err
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}

// SetMany upserts each entry individually. Keys are independent: a failure
// on one key does not roll back the others, and the last write wins per key.
func (s *Service) SetMany(ctx context.Context, entries map[string]string) error {
	for key, value := range entries {
		row := Setting{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&row).Error
		if err != nil {
			s.logger.Error("setting upsert failed", zap.String("key", key), zap.Error(err))
			return err
		}
	}
	return nil
}
