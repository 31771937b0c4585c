package models

import "time"

// Quest type tags. Game actions advance only the quests whose QuestType
// matches the tag for that action.
const (
	QuestTypeLogin       = "login"
	QuestTypeBuyTitle    = "buy_title"
	QuestTypeSellTitle   = "sell_title"
	QuestTypeDailyStreak = "daily_streak"
	QuestTypeAdminCoins  = "admin_coins"
	QuestTypeChatMessage = "chat_messages"
)

// Quest is a static catalog entry describing a goal and its reward.
type Quest struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:128;not null" json:"title"`
	Description  string    `gorm:"size:255" json:"description"`
	Reward       int       `gorm:"default:0" json:"reward"`
	QuestType    string    `gorm:"size:32;index;not null" json:"quest_type"`
	TargetValue  int       `gorm:"default:0" json:"target_value"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time `json:"-"`
}

// UserQuest tracks a single user's progress against one quest. Rows are
// created lazily; actions that advance a quest the user has no row for are
// silent no-ops.
type UserQuest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null;uniqueIndex:idx_user_quest" json:"user_id"`
	QuestID   uint      `gorm:"not null;uniqueIndex:idx_user_quest" json:"quest_id"`
	Progress  int       `gorm:"default:0" json:"progress"`
	Completed bool      `gorm:"default:false" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
