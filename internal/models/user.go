package models

import "time"

// User represents a registered account. The password is only ever stored
// as a bcrypt hash and is never serialized.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password;size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
