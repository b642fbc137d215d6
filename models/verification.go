package models

import "time"

// Verification is a single-use password-reset OTP. At most one live record
// per user; issuing a new one purges any earlier record first. The OTP value
// is stored bcrypt-hashed and expires one hour after CreatedAt, checked at
// confirm time.
type Verification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	OTP       string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
