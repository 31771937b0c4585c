package models

import "time"

// Title is a purchasable display tag from the static catalog, e.g. "[NEWBIE]".
type Title struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:64;not null" json:"name"`
	Price        int       `gorm:"default:0" json:"price"`
	Color        string    `gorm:"size:32" json:"color"`
	IsLimited    bool      `gorm:"default:false" json:"is_limited"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time `json:"-"`
}

// StarterTitleName is granted at registration and cannot be sold back.
// The protection is name-based, there is no dedicated flag on the row.
const StarterTitleName = "[NEWBIE]"

// UserTitle is the ownership join between a user and a title. A user owns
// at most one row per title.
type UserTitle struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null;uniqueIndex:idx_user_title" json:"user_id"`
	TitleID   uint      `gorm:"not null;uniqueIndex:idx_user_title" json:"title_id"`
	CreatedAt time.Time `json:"created_at"`
}
