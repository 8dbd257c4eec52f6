package registration

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/uzeuro/association-api/internal/content"
)

const (
	defaultWebinarCapacity = 300
	defaultEventCapacity   = 200
)

var (
	// ErrCapacityFull indicates the resource is at or over its capacity.
	ErrCapacityFull = errors.New("registration: capacity reached")
	// ErrAlreadyRegistered indicates a registration already exists for the
	// same (resource, email) pair.
	ErrAlreadyRegistered = errors.New("registration: already registered")
	// ErrNotFound indicates the referenced resource or registration does not exist.
	ErrNotFound = errors.New("registration: not found")

	errMissingDatabase = errors.New("database handle is required")
)

// Request carries the registrant fields shared by webinar and event signups.
type Request struct {
	Name        string
	Email       string
	Phone       string
	Citizenship string
	Telegram    string
}

// WebinarRequest registers for a webinar. A nil or unresolvable WebinarID
// skips the capacity and duplicate gates and records the registration as-is.
type WebinarRequest struct {
	Request
	WebinarID    *int64
	WebinarTitle string
}

// EventRequest registers for an event, which must exist.
type EventRequest struct {
	Request
	EventID int64
}

// Admission reports the outcome of an admitted or rejected registration.
// Remaining counts spots left after the decision; ResourceTitle echoes the
// resolved webinar or event title for notification bodies.
type Admission struct {
	Remaining     int64
	ResourceTitle string
}

// ServiceConfig describes the dependencies of the registration service.
type ServiceConfig struct {
	Database *gorm.DB
	Logger   *zap.Logger
}

// Service applies the capacity and duplicate gates and records registrations.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService constructs the registration service.
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

// RegisterWebinar admits a registrant to a webinar. When the webinar id
// resolves, admission is decided inside one transaction by a conditional
// counter increment (the increment only succeeds while registered_count is
// below capacity) followed by the registration insert; the unique
// (webinar_id, email) index over resolved rows turns a racing duplicate into
// ErrAlreadyRegistered. When the id does not resolve, both gates are skipped
// and the registration is recorded anyway, outside the index, so repeat
// signups for an unresolved id insert too.
func (s *Service) RegisterWebinar(ctx context.Context, req WebinarRequest) (Admission, error) {
	var admission Admission

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := WebinarRegistration{
			Name:         req.Name,
			Email:        req.Email,
			Phone:        req.Phone,
			Citizenship:  req.Citizenship,
			Telegram:     req.Telegram,
			WebinarID:    req.WebinarID,
			WebinarTitle: req.WebinarTitle,
			Status:       StatusRegistered,
		}

		if req.WebinarID != nil {
			var webinar content.Webinar
			err := tx.Select("id", "title", "max_capacity", "registered_count").
				Take(&webinar, *req.WebinarID).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err == nil {
				capacity := webinar.MaxCapacity
				if capacity <= 0 {
					capacity = defaultWebinarCapacity
				}
				admission.ResourceTitle = webinar.Title
				if webinar.RegisteredCount >= capacity {
					admission.Remaining = 0
					return ErrCapacityFull
				}

				var existing int64
				if err := tx.Model(&WebinarRegistration{}).
					Where("webinar_id = ? AND email = ?", *req.WebinarID, req.Email).
					Count(&existing).Error; err != nil {
					return err
				}
				if existing > 0 {
					admission.Remaining = capacity - webinar.RegisteredCount
					return ErrAlreadyRegistered
				}

				increment := tx.Model(&content.Webinar{}).
					Where("id = ? AND registered_count < ?", *req.WebinarID, capacity).
					UpdateColumn("registered_count", gorm.Expr("registered_count + 1"))
				if increment.Error != nil {
					return increment.Error
				}
				if increment.RowsAffected == 0 {
					admission.Remaining = 0
					return ErrCapacityFull
				}
				admission.Remaining = capacity - webinar.RegisteredCount - 1
				row.WebinarResolved = true
			}
		}

		if err := tx.Create(&row).Error; err != nil {
			if isDuplicate(err) {
				return ErrAlreadyRegistered
			}
			return err
		}
		return nil
	})

	if err != nil && !errors.Is(err, ErrCapacityFull) && !errors.Is(err, ErrAlreadyRegistered) {
		s.logger.Error("webinar registration failed", zap.String("email", req.Email), zap.Error(err))
	}
	return admission, err
}

// RegisterEvent admits a registrant to an event, which must exist. The
// admission decision is the same conditional increment as for webinars.
func (s *Service) RegisterEvent(ctx context.Context, req EventRequest) (Admission, error) {
	var admission Admission

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event content.Event
		err := tx.Select("id", "title", "max_capacity", "registered_count").
			Take(&event, req.EventID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		capacity := event.MaxCapacity
		if capacity <= 0 {
			capacity = defaultEventCapacity
		}
		admission.ResourceTitle = event.Title
		if event.RegisteredCount >= capacity {
			admission.Remaining = 0
			return ErrCapacityFull
		}

		var existing int64
		if err := tx.Model(&EventRegistration{}).
			Where("event_id = ? AND email = ?", req.EventID, req.Email).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			admission.Remaining = capacity - event.RegisteredCount
			return ErrAlreadyRegistered
		}

		increment := tx.Model(&content.Event{}).
			Where("id = ? AND registered_count < ?", req.EventID, capacity).
			UpdateColumn("registered_count", gorm.Expr("registered_count + 1"))
		if increment.Error != nil {
			return increment.Error
		}
		if increment.RowsAffected == 0 {
			admission.Remaining = 0
			return ErrCapacityFull
		}

		row := EventRegistration{
			EventID:     req.EventID,
			Name:        req.Name,
			Email:       req.Email,
			Phone:       req.Phone,
			Citizenship: req.Citizenship,
			Telegram:    req.Telegram,
		}
		if err := tx.Create(&row).Error; err != nil {
			if isDuplicate(err) {
				return ErrAlreadyRegistered
			}
			return err
		}

		admission.Remaining = capacity - event.RegisteredCount - 1
		return nil
	})

	if err != nil && !errors.Is(err, ErrCapacityFull) && !errors.Is(err, ErrAlreadyRegistered) && !errors.Is(err, ErrNotFound) {
		s.logger.Error("event registration failed", zap.Int64("event_id", req.EventID), zap.String("email", req.Email), zap.Error(err))
	}
	return admission, err
}

// ListWebinarRegistrations returns webinar registrations, newest first,
// optionally scoped to one webinar.
func (s *Service) ListWebinarRegistrations(ctx context.Context, webinarID *int64) ([]WebinarRegistration, error) {
	query := s.db.WithContext(ctx)
	if webinarID != nil {
		query = query.Where("webinar_id = ?", *webinarID)
	}
	var registrations []WebinarRegistration
	if err := query.Order("created_at DESC").Find(&registrations).Error; err != nil {
		s.logger.Error("webinar registration list failed", zap.Error(err))
		return nil, err
	}
	return registrations, nil
}

// ListEventRegistrations returns event registrations, newest first,
// optionally scoped to one event.
func (s *Service) ListEventRegistrations(ctx context.Context, eventID *int64) ([]EventRegistration, error) {
	query := s.db.WithContext(ctx)
	if eventID != nil {
		query = query.Where("event_id = ?", *eventID)
	}
	var registrations []EventRegistration
	if err := query.Order("created_at DESC").Find(&registrations).Error; err != nil {
		s.logger.Error("event registration list failed", zap.Error(err))
		return nil, err
	}
	return registrations, nil
}

// UpdateWebinarStatus sets the attendance status of a webinar registration.
func (s *Service) UpdateWebinarStatus(ctx context.Context, id int64, status string) error {
	result := s.db.WithContext(ctx).Model(&WebinarRegistration{}).Where("id = ?", id).
		UpdateColumn("status", status)
	if result.Error != nil {
		s.logger.Error("registration status update failed", zap.Int64("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteWebinarRegistration hard-deletes a registration. The webinar's
// registered_count is left untouched: the counters are snapshot-style and
// never decrement.
func (s *Service) DeleteWebinarRegistration(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&WebinarRegistration{}, id)
	if result.Error != nil {
		s.logger.Error("registration delete failed", zap.Int64("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountWebinarRegistrations returns the total webinar registration count.
func (s *Service) CountWebinarRegistrations(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&WebinarRegistration{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
