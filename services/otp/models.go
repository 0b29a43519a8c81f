package otp

import (
	"time"
)

// Code is a short-lived signup verification code. At most one row exists per
// email: issuance deletes prior rows before inserting, and the unique index
// keeps a race between two issuance calls from leaving two live rows.
type Code struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Code      string    `json:"-" gorm:"not null"`
	Attempts  int       `json:"attempts" gorm:"not null;default:0"`
	Verified  bool      `json:"verified" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}

func (Code) TableName() string {
	return "otp_codes"
}

// ExpiresAt reports when the code stops being acceptable, measured from
// creation time.
func (c *Code) ExpiresAt(expiry time.Duration) time.Time {
	return c.CreatedAt.Add(expiry)
}
