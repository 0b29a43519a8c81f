package auth

import (
	"time"
)

type User struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Email             string    `json:"email" gorm:"uniqueIndex;not null"`
	Password          string    `json:"-" gorm:"not null"`
	FullName          string    `json:"fullName"`
	MobileNumber      string    `json:"mobileNumber"`
	ProfilePictureURL string    `json:"profilePictureUrl"`
	CreatedAt         time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
