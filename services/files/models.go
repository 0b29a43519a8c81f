package files

import (
	"time"
)

const DefaultFolder = "General"

type File struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index:idx_files_user_created;index:idx_files_user_folder"`
	Name      string    `json:"name" gorm:"not null"`
	URL       string    `json:"url" gorm:"not null"`
	Key       string    `json:"key" gorm:"not null"`
	Type      string    `json:"type" gorm:"not null"`
	Size      int64     `json:"size" gorm:"not null"`
	Folder    string    `json:"folder" gorm:"default:'General';index:idx_files_user_folder"`
	CreatedAt time.Time `json:"createdAt" gorm:"index:idx_files_user_created"`
}

func (File) TableName() string {
	return "files"
}
