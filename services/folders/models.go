package folders

import (
	"time"
)

const DefaultColor = "#3b82f6"

type Folder struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	Color     string    `json:"color" gorm:"default:'#3b82f6'"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Folder) TableName() string {
	return "folders"
}
