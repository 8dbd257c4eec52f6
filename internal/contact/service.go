package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrInvalidInput indicates a required message field is missing.
	ErrInvalidInput = errors.New("contact: invalid input")
	// ErrNotFound indicates the message does not exist.
	ErrNotFound = errors.New("contact: message not found")

	errMissingDatabase = errors.New("database handle is required")
)

// SubmitRequest carries the public contact form fields.
type SubmitRequest struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Counts aggregates message totals for the stats endpoint.
type Counts struct {
	Total int64 `json:"total"`
	New   int64 `json:"new_count"`
}

// ServiceConfig describes the dependencies of the contact service.
type ServiceConfig struct {
	Database *gorm.DB
	Logger   *zap.Logger
}

// Service manages contact messages.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService constructs the contact service.
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

// Submit stores a new message with status "new". Name and email are required.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Message, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}

	message := Message{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Status:  StatusNew,
	}
	if err := s.db.WithContext(ctx).Create(&message).Error; err != nil {
		s.logger.Error("contact message insert failed", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}
	return &message, nil
}

// List returns messages, newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string) ([]Message, error) {
	query := s.db.WithContext(ctx)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var messages []Message
	if err := query.Order("created_at DESC").Find(&messages).Error; err != nil {
		s.logger.Error("contact message list failed", zap.Error(err))
		return nil, err
	}
	return messages, nil
}

// UpdateStatus sets the message status.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	result := s.db.WithContext(ctx).Model(&Message{}).Where("id = ?", id).
		UpdateColumn("status", status)
	if result.Error != nil {
		s.logger.Error("contact status update failed", zap.Int64("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete hard-deletes the message.
func (s *Service) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&Message{}, id)
	if result.Error != nil {
		s.logger.Error("contact message delete failed", zap.Int64("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns total and new message counts.
func (s *Service) Count(ctx context.Context) (Counts, error) {
	var counts Counts
	if err := s.db.WithContext(ctx).Model(&Message{}).Count(&counts.Total).Error; err != nil {
		return Counts{}, err
	}
	if err := s.db.WithContext(ctx).Model(&Message{}).Where("status = ?", StatusNew).Count(&counts.New).Error; err != nil {
		return Counts{}, err
	}
	return counts, nil
}
