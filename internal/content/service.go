package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrUnknownTable indicates the table name is not in the CRUD registry.
	ErrUnknownTable = errors.New("content: unknown table")
	// ErrUnknownField indicates an update carried a column outside the table's allow-list.
	ErrUnknownField = errors.New("content: unknown field")
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("content: not found")

	errMissingDatabase = errors.New("database handle is required")
)

// TimeframeUpcoming and TimeframePast select events relative to today.
const (
	TimeframeUpcoming = "upcoming"
	TimeframePast     = "past"
)

// ListFilters narrows a content listing. Timeframe and Format only apply to
// the events table and are ignored elsewhere.
type ListFilters struct {
	Status    string
	Timeframe string
	Format    string
}

// Row is a content table row in column→value form, suitable for direct JSON
// serialization.
type Row = map[string]interface{}

// ServiceConfig describes the dependencies of the content service.
type ServiceConfig struct {
	Database *gorm.DB
	Clock    func() time.Time
	Logger   *zap.Logger
}

// Service implements generic CRUD over the registered content tables.
type Service struct {
	db     *gorm.DB
	clock  func() time.Time
	logger *zap.Logger
}

// NewService constructs the content service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Database == nil {
		return nil, errMissingDatabase
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: cfg.Database, clock: clock, logger: logger}, nil
}

// List returns all rows of the table matching the filters, newest first.
func (s *Service) List(ctx context.Context, table string, filters ListFilters) ([]Row, error) {
	spec, ok := tableRegistry[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	query := s.db.WithContext(ctx).Table(spec.name)
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if spec.name == TableEvents {
		today := s.clock().UTC().Format("2006-01-02")
		switch filters.Timeframe {
		case TimeframeUpcoming:
			query = query.Where("event_date >= ?", today)
		case TimeframePast:
			query = query.Where("event_date < ?", today)
		}
		if filters.Format != "" {
			query = query.Where("format = ?", filters.Format)
		}
	}

	rows := make([]Row, 0)
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		s.logger.Error("content list failed", zap.String("table", spec.name), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

// Get returns a single row by id.
func (s *Service) Get(ctx context.Context, table string, id int64) (Row, error) {
	spec, ok := tableRegistry[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	row := Row{}
	err := s.db.WithContext(ctx).Table(spec.name).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Error("content get failed", zap.String("table", spec.name), zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return row, nil
}

// Create inserts a new row built from the intersection of the body and the
// table's allow-list. Unknown body keys are dropped; absent allowed columns
// fall back to their store defaults.
func (s *Service) Create(ctx context.Context, table string, body Row) error {
	spec, ok := tableRegistry[table]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	values := Row{}
	for key, value := range body {
		if _, allowed := spec.allowed[key]; allowed {
			values[key] = value
		}
	}

	// Map-based creates bypass GORM's automatic timestamps.
	now := s.clock().UTC()
	values["created_at"] = now
	values["updated_at"] = now

	if err := s.db.WithContext(ctx).Table(spec.name).Create(values).Error; err != nil {
		s.logger.Error("content create failed", zap.String("table", spec.name), zap.Error(err))
		return err
	}
	return nil
}

// Update applies the body to the row, enforcing the same allow-list as
// Create: a key outside it (other than id, which is skipped) fails fast
// instead of reaching the store. The updated_at stamp is always refreshed.
func (s *Service) Update(ctx context.Context, table string, id int64, body Row) error {
	spec, ok := tableRegistry[table]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	values := Row{}
	for key, value := range body {
		if key == "id" {
			continue
		}
		if _, allowed := spec.allowed[key]; !allowed {
			return fmt.Errorf("%w: %s.%s", ErrUnknownField, spec.name, key)
		}
		values[key] = value
	}
	values["updated_at"] = s.clock().UTC()

	result := s.db.WithContext(ctx).Table(spec.name).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		s.logger.Error("content update failed", zap.String("table", spec.name), zap.Int64("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete hard-deletes the row. Registrations referencing it are left in
// place and counters are not adjusted.
func (s *Service) Delete(ctx context.Context, table string, id int64) error {
	spec, ok := tableRegistry[table]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	result := s.db.WithContext(ctx).Table(spec.name).Where("id = ?", id).Delete(nil)
	if result.Error != nil {
		s.logger.Error("content delete failed", zap.String("table", spec.name), zap.Int64("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementDownloads bumps a publication's download counter and returns the
// new value.
func (s *Service) IncrementDownloads(ctx context.Context, id int64) (int64, error) {
	result := s.db.WithContext(ctx).Model(&Publication{}).Where("id = ?", id).
		UpdateColumn("downloads", gorm.Expr("downloads + 1"))
	if result.Error != nil {
		s.logger.Error("download increment failed", zap.Int64("id", id), zap.Error(result.Error))
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrNotFound
	}

	var publication Publication
	if err := s.db.WithContext(ctx).Select("downloads").Take(&publication, id).Error; err != nil {
		return 0, err
	}
	return publication.Downloads, nil
}

// Counts returns the total row count of every registered content table.
func (s *Service) Counts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(tableRegistry))
	for _, table := range Tables() {
		var total int64
		if err := s.db.WithContext(ctx).Table(table).Count(&total).Error; err != nil {
			s.logger.Error("content count failed", zap.String("table", table), zap.Error(err))
			return nil, err
		}
		counts[table] = total
	}
	return counts, nil
}
