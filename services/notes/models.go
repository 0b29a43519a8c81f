package notes

import (
	"time"
)

const DefaultFolder = "General"

type Note struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index:idx_notes_user_created"`
	Title     string    `json:"title" gorm:"not null;default:'Untitled Note'"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags" gorm:"serializer:json"`
	Folder    string    `json:"folder" gorm:"default:'General'"`
	IsPinned  bool      `json:"isPinned" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt" gorm:"index:idx_notes_user_created"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Note) TableName() string {
	return "notes"
}
