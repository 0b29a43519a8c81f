package folders

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jotapp/jot/services/logging"
	"github.com/jotapp/jot/services/notes"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrFolderNotFound = errors.New("folder not found")
	ErrNotOwner       = errors.New("folder belongs to another user")
	ErrNameRequired   = errors.New("folder name is required")
)

type Service struct {
	db     *gorm.DB
	notes  *notes.Service
	logger *logging.Service
}

func NewService(db *gorm.DB, notesSvc *notes.Service, logger *logging.Service) *Service {
	return &Service{db: db, notes: notesSvc, logger: logger}
}

func (s *Service) List(userID uint) ([]Folder, error) {
	var result []Folder
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&result).Error; err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	return result, nil
}

func (s *Service) Create(userID uint, name, color string) (*Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	folder := &Folder{
		UserID: userID,
		Name:   name,
		Color:  strings.TrimSpace(color),
	}
	if folder.Color == "" {
		folder.Color = DefaultColor
	}

	if err := s.db.Create(folder).Error; err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	s.logger.Info("folder created", zap.Uint("user_id", userID), zap.String("name", name))
	return folder, nil
}

func (s *Service) Get(userID, folderID uint) (*Folder, error) {
	var folder Folder
	if err := s.db.First(&folder, folderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFolderNotFound
		}
		return nil, fmt.Errorf("failed to look up folder: %w", err)
	}

	if folder.UserID != userID {
		return nil, ErrNotOwner
	}

	return &folder, nil
}

type UpdateInput struct {
	Name  *string
	Color *string
}

// Update renames or recolors a folder. A rename also moves the user's notes
// from the old name to the new one so they stay grouped.
func (s *Service) Update(userID, folderID uint, input UpdateInput) (*Folder, error) {
	folder, err := s.Get(userID, folderID)
	if err != nil {
		return nil, err
	}

	oldName := folder.Name

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		folder.Name = name
	}
	if input.Color != nil {
		folder.Color = strings.TrimSpace(*input.Color)
	}

	if err := s.db.Save(folder).Error; err != nil {
		return nil, fmt.Errorf("failed to update folder: %w", err)
	}

	if folder.Name != oldName {
		moved, err := s.notes.MoveAll(userID, oldName, folder.Name)
		if err != nil {
			return nil, err
		}
		s.logger.Info("folder renamed",
			zap.Uint("user_id", userID),
			zap.String("from", oldName),
			zap.String("to", folder.Name),
			zap.Int64("notes_moved", moved))
	}

	return folder, nil
}

// Delete removes a folder and moves its notes to the default folder so no
// note is orphaned.
func (s *Service) Delete(userID, folderID uint) error {
	folder, err := s.Get(userID, folderID)
	if err != nil {
		return err
	}

	moved, err := s.notes.MoveAll(userID, folder.Name, notes.DefaultFolder)
	if err != nil {
		return err
	}

	if err := s.db.Delete(folder).Error; err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	s.logger.Info("folder deleted",
		zap.Uint("user_id", userID),
		zap.String("name", folder.Name),
		zap.Int64("notes_moved", moved))
	return nil
}
