package membership

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrInvalidInput indicates a required application field is missing.
	ErrInvalidInput = errors.New("membership: invalid input")
	// ErrNotFound indicates the application does not exist.
	ErrNotFound = errors.New("membership: application not found")

	errMissingDatabase = errors.New("database handle is required")
)

// SubmitRequest carries the public application form fields.
type SubmitRequest struct {
	FirstName       string
	LastName        string
	Email           string
	Company         string
	Position        string
	Country         string
	Experience      string
	Tier            string
	Specializations []string
}

// Counts aggregates application totals for the stats endpoint.
type Counts struct {
	Total int64 `json:"total"`
	New   int64 `json:"new_count"`
}

// ServiceConfig describes the dependencies of the membership service.
type ServiceConfig struct {
	Database *gorm.DB
	Logger   *zap.Logger
}

// Service manages membership applications.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService constructs the membership service.
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

// Submit stores a new application with status "new". First name, last name
// and email are required; everything else is accepted as given.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Application, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("%w: first name, last name and email are required", ErrInvalidInput)
	}

	tier := req.Tier
	if tier == "" {
		tier = TierFull
	}
	specializations := req.Specializations
	if specializations == nil {
		specializations = []string{}
	}
	encoded, err := json.Marshal(specializations)
	if err != nil {
		return nil, fmt.Errorf("membership: encode specializations: %w", err)
	}

	application := Application{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Company:         req.Company,
		Position:        req.Position,
		Country:         req.Country,
		Experience:      req.Experience,
		Tier:            tier,
		Specializations: string(encoded),
		Status:          StatusNew,
	}
	if err := s.db.WithContext(ctx).Create(&application).Error; err != nil {
		s.logger.Error("application insert failed", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}
	return &application, nil
}

// List returns applications, newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string) ([]Application, error) {
	query := s.db.WithContext(ctx)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var applications []Application
	if err := query.Order("created_at DESC").Find(&applications).Error; err != nil {
		s.logger.Error("application list failed", zap.Error(err))
		return nil, err
	}
	return applications, nil
}

// UpdateStatus sets the application status and refreshes updated_at.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	result := s.db.WithContext(ctx).Model(&Application{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		s.logger.Error("application status update failed", zap.Int64("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete hard-deletes the application.
func (s *Service) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&Application{}, id)
	if result.Error != nil {
		s.logger.Error("application delete failed", zap.Int64("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns total and new application counts.
func (s *Service) Count(ctx context.Context) (Counts, error) {
	var counts Counts
	if err := s.db.WithContext(ctx).Model(&Application{}).Count(&counts.Total).Error; err != nil {
		return Counts{}, err
	}
	if err := s.db.WithContext(ctx).Model(&Application{}).Where("status = ?", StatusNew).Count(&counts.New).Error; err != nil {
		return Counts{}, err
	}
	return counts, nil
}

// DecodeSpecializations restores the ordered tag list from its stored form.
func DecodeSpecializations(encoded string) ([]string, error) {
	if encoded == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(encoded), &tags); err != nil {
		return nil, fmt.Errorf("membership: decode specializations: %w", err)
	}
	return tags, nil
}
