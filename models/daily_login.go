package models

import "time"

// DailyLogin records one claimed (or claimable) calendar day per user.
// LoginDate is normalized to local midnight; the unique index backs the
// ON CONFLICT upsert in the claim path. The streak stored on the newest
// row equals the number of consecutive prior days claimed.
type DailyLogin struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index;not null;uniqueIndex:idx_user_login_date" json:"user_id"`
	LoginDate     time.Time `gorm:"not null;uniqueIndex:idx_user_login_date" json:"login_date"`
	DayStreak     int       `gorm:"default:1" json:"day_streak"`
	RewardClaimed bool      `gorm:"default:false" json:"reward_claimed"`
	CreatedAt     time.Time `json:"created_at"`
}
