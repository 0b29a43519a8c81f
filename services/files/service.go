package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jotapp/jot/services/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrFileNotFound = errors.New("file not found")

// ObjectStore is the slice of the storage backend the file service needs.
// The minio client satisfies it; tests substitute a mock.
type ObjectStore interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

type Service struct {
	db     *gorm.DB
	store  ObjectStore
	logger *logging.Service
}

func NewService(db *gorm.DB, store ObjectStore, logger *logging.Service) *Service {
	return &Service{db: db, store: store, logger: logger}
}

type ListOptions struct {
	Folder string
	Type   string
}

func (s *Service) List(userID uint, opts ListOptions) ([]File, error) {
	query := s.db.Where("user_id = ?", userID)

	if opts.Folder != "" && opts.Folder != "all" {
		query = query.Where("folder = ?", opts.Folder)
	}

	switch opts.Type {
	case "image":
		query = query.Where("type LIKE ?", "image/%")
	case "document":
		query = query.Where("type = ? OR type LIKE ?", "application/pdf", "text/%")
	}

	var result []File
	if err := query.Order("created_at DESC").Find(&result).Error; err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	return result, nil
}

// Upload streams the content into the object store under a fresh key scoped
// to the owner, then records the metadata.
func (s *Service) Upload(ctx context.Context, userID uint, name, contentType string, size int64, reader io.Reader) (*File, error) {
	key := fmt.Sprintf("%d/%s%s", userID, uuid.New().String(), filepath.Ext(name))

	if err := s.store.Upload(ctx, key, reader, size, contentType); err != nil {
		return nil, err
	}

	file := &File{
		UserID: userID,
		Name:   name,
		URL:    s.store.URL(key),
		Key:    key,
		Type:   contentType,
		Size:   size,
		Folder: DefaultFolder,
	}
	if err := s.db.Create(file).Error; err != nil {
		return nil, fmt.Errorf("failed to record file: %w", err)
	}

	s.logger.Info("file uploaded",
		zap.Uint("user_id", userID),
		zap.String("key", key),
		zap.Int64("size", size))
	return file, nil
}

func (s *Service) Get(userID, fileID uint) (*File, error) {
	var file File
	if err := s.db.Where("id = ? AND user_id = ?", fileID, userID).First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to look up file: %w", err)
	}
	return &file, nil
}

func (s *Service) Move(userID, fileID uint, folder string) (*File, error) {
	file, err := s.Get(userID, fileID)
	if err != nil {
		return nil, err
	}

	file.Folder = folder
	if err := s.db.Save(file).Error; err != nil {
		return nil, fmt.Errorf("failed to move file: %w", err)
	}
	return file, nil
}

// Delete removes the object from storage and then the metadata row. A storage
// failure is logged and the row is removed anyway, matching the listing being
// the source of truth for what the user sees.
func (s *Service) Delete(ctx context.Context, userID, fileID uint) error {
	file, err := s.Get(userID, fileID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, file.Key); err != nil {
		s.logger.Error("failed to delete object from storage",
			zap.Error(err),
			zap.String("key", file.Key))
	}

	if err := s.db.Delete(file).Error; err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	s.logger.Info("file deleted", zap.Uint("user_id", userID), zap.String("key", file.Key))
	return nil
}
