package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a player account. Passwords are stored as legacy
// unsalted SHA-256 hex digests so credentials stay compatible with the
// previously deployed database.
type User struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Username         string     `gorm:"size:64;uniqueIndex;not null" json:"username"`
	PasswordHash     string     `gorm:"size:64;not null" json:"-"`
	Coins            int        `gorm:"default:0" json:"coins"`
	IsAdmin          bool       `gorm:"default:false" json:"is_admin"`
	LastLogin        *time.Time `json:"last_login"`
	TimeSpentMinutes int        `gorm:"default:0" json:"time_spent_minutes"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
