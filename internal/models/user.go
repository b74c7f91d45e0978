package models

import (
	"time"
)

// User is a registered account. Passwords are stored as bcrypt hashes,
// never in the clear.
type User struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	FirstName    string `gorm:"size:255"`
	LastName     string `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
