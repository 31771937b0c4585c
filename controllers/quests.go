package controllers

import (
	"gorm.io/gorm"

	"github.com/titulgame/backend/models"
)

// bumpQuestProgress advances every quest of the given type the user already
// has a progress row for. Users without a row are untouched; quest rows are
// never created here.
func bumpQuestProgress(db *gorm.DB, userID uint, questType string, delta int) error {
	sub := db.Model(&models.Quest{}).Select("id").Where("quest_type = ?", questType)
	return db.Model(&models.UserQuest{}).
		Where("user_id = ? AND quest_id IN (?)", userID, sub).
		Update("progress", gorm.Expr("progress + ?", delta)).Error
}

// setQuestProgress overwrites progress for the user's quests of the given
// type. Used by the daily streak, which stores the streak value itself.
func setQuestProgress(db *gorm.DB, userID uint, questType string, value int) error {
	sub := db.Model(&models.Quest{}).Select("id").Where("quest_type = ?", questType)
	return db.Model(&models.UserQuest{}).
		Where("user_id = ? AND quest_id IN (?)", userID, sub).
		Update("progress", value).Error
}
