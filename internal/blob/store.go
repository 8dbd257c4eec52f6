package blob

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Blob namespaces. Images and files live in the same table but are
// addressed independently.
const (
	NamespaceImages = "images"
	NamespaceFiles  = "files"
)

// Fallback MIME types when no metadata was stored.
const (
	DefaultImageMime = "image/jpeg"
	DefaultFileMime  = "application/octet-stream"
)

var (
	// ErrInvalidData indicates the payload is not a decodable data URI or base64 string.
	ErrInvalidData = errors.New("blob: invalid data")
	// ErrNotFound indicates no blob exists under the id.
	ErrNotFound = errors.New("blob: not found")

	errMissingDatabase = errors.New("database handle is required")

	imageDataURIPattern = regexp.MustCompile(`^data:(image/\w+);base64,(.+)$`)
	anyDataURIPattern   = regexp.MustCompile(`^data:[^;]+;base64,(.+)$`)
)

// Blob is an opaque byte payload stored under a random identifier with small
// metadata. Lifetime is indefinite: there is no expiry and no delete path.
type Blob struct {
	ID        string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Namespace string    `gorm:"column:namespace;size:16;not null;index" json:"namespace"`
	MimeType  string    `gorm:"column:mime_type;size:190" json:"mime_type"`
	FileName  string    `gorm:"column:file_name;size:512" json:"file_name"`
	Data      []byte    `gorm:"column:data;not null" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName provides the explicit table binding for GORM.
func (Blob) TableName() string {
	return "blobs"
}

// StoreConfig describes the dependencies of the blob store.
type StoreConfig struct {
	Database *gorm.DB
	Logger   *zap.Logger
}

// Store persists uploaded images and files.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStore constructs the blob store.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.Database == nil {
		return nil, errMissingDatabase
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: cfg.Database, logger: logger}, nil
}

// PutImage decodes a data:image/...;base64 payload and stores it under a
// fresh random id in the images namespace, returning the id and MIME type.
func (s *Store) PutImage(ctx context.Context, dataURI string) (string, string, error) {
	match := imageDataURIPattern.FindStringSubmatch(dataURI)
	if match == nil {
		return "", "", fmt.Errorf("%w: expected data:image/...;base64 payload", ErrInvalidData)
	}
	mimeType := match[1]

	payload, err := base64.StdEncoding.DecodeString(match[2])
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	id := uuid.NewString()
	record := Blob{ID: id, Namespace: NamespaceImages, MimeType: mimeType, Data: payload}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		s.logger.Error("image store failed", zap.String("id", id), zap.Error(err))
		return "", "", err
	}
	return id, mimeType, nil
}

// PutFile stores a document from either a full data URI or raw base64,
// keeping the caller-supplied file name and MIME type as metadata.
func (s *Store) PutFile(ctx context.Context, data, fileName, mimeType string) (string, error) {
	raw := data
	if match := anyDataURIPattern.FindStringSubmatch(data); match != nil {
		raw = match[1]
	}

	payload, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	if fileName == "" {
		fileName = "file"
	}
	if mimeType == "" {
		mimeType = DefaultFileMime
	}

	id := uuid.NewString()
	record := Blob{ID: id, Namespace: NamespaceFiles, MimeType: mimeType, FileName: fileName, Data: payload}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		s.logger.Error("file store failed", zap.String("id", id), zap.Error(err))
		return "", err
	}
	return id, nil
}

// Get returns the blob stored under the namespace and id.
func (s *Store) Get(ctx context.Context, namespace, id string) (*Blob, error) {
	var record Blob
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND id = ?", namespace, id).
		Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Error("blob read failed", zap.String("namespace", namespace), zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &record, nil
}
