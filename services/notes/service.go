package notes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jotapp/jot/services/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrNotOwner     = errors.New("note belongs to another user")
)

type Service struct {
	db     *gorm.DB
	logger *logging.Service
}

func NewService(db *gorm.DB, logger *logging.Service) *Service {
	return &Service{db: db, logger: logger}
}

type ListOptions struct {
	Folder string
	Search string
}

// List returns the user's notes, pinned first, most recently updated next.
func (s *Service) List(userID uint, opts ListOptions) ([]Note, error) {
	query := s.db.Where("user_id = ?", userID)

	if opts.Folder != "" {
		query = query.Where("folder = ?", opts.Folder)
	}

	if opts.Search != "" {
		pattern := "%" + strings.ToLower(opts.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
	}

	var result []Note
	if err := query.Order("is_pinned DESC, updated_at DESC").Find(&result).Error; err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return result, nil
}

type CreateInput struct {
	Title   string
	Content string
	Tags    []string
	Folder  string
}

func (s *Service) Create(userID uint, input CreateInput) (*Note, error) {
	note := &Note{
		UserID:  userID,
		Title:   strings.TrimSpace(input.Title),
		Content: input.Content,
		Tags:    input.Tags,
		Folder:  strings.TrimSpace(input.Folder),
	}
	if note.Title == "" {
		note.Title = "Untitled Note"
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}
	if note.Folder == "" {
		note.Folder = DefaultFolder
	}

	if err := s.db.Create(note).Error; err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	s.logger.Info("note created", zap.Uint("user_id", userID), zap.Uint("note_id", note.ID))
	return note, nil
}

// Get looks a note up by id and enforces ownership; a note owned by another
// user reports ErrNotOwner rather than pretending it does not exist.
func (s *Service) Get(userID, noteID uint) (*Note, error) {
	var note Note
	if err := s.db.First(&note, noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to look up note: %w", err)
	}

	if note.UserID != userID {
		return nil, ErrNotOwner
	}

	return &note, nil
}

// UpdateInput carries partial note changes; nil fields are left untouched.
type UpdateInput struct {
	Title    *string
	Content  *string
	Tags     *[]string
	Folder   *string
	IsPinned *bool
}

func (s *Service) Update(userID, noteID uint, input UpdateInput) (*Note, error) {
	note, err := s.Get(userID, noteID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		note.Title = *input.Title
	}
	if input.Content != nil {
		note.Content = *input.Content
	}
	if input.Tags != nil {
		note.Tags = *input.Tags
	}
	if input.Folder != nil {
		note.Folder = *input.Folder
	}
	if input.IsPinned != nil {
		note.IsPinned = *input.IsPinned
	}

	if err := s.db.Save(note).Error; err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}

func (s *Service) Delete(userID, noteID uint) error {
	note, err := s.Get(userID, noteID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(note).Error; err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	s.logger.Info("note deleted", zap.Uint("user_id", userID), zap.Uint("note_id", noteID))
	return nil
}

// MoveAll reassigns every note a user has in one folder to another. Used when
// a folder is renamed or deleted.
func (s *Service) MoveAll(userID uint, fromFolder, toFolder string) (int64, error) {
	result := s.db.Model(&Note{}).
		Where("user_id = ? AND folder = ?", userID, fromFolder).
		Update("folder", toFolder)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to move notes: %w", result.Error)
	}
	return result.RowsAffected, nil
}
