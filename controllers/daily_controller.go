package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/titulgame/backend/models"
	"github.com/titulgame/backend/utils"
)

// DailyController handles the daily reward claim.
type DailyController struct {
	db *gorm.DB
}

// NewDailyController creates a DailyController.
func NewDailyController(db *gorm.DB) *DailyController {
	return &DailyController{db: db}
}

type dailyReward struct {
	Coins int
	Title string
}

// dailyRewards maps streak day to its reward. Days past 7 yield nothing;
// the streak itself keeps counting.
var dailyRewards = map[int]dailyReward{
	1: {Coins: 50},
	2: {Coins: 100},
	3: {Title: "[Третий]"},
	4: {Coins: 150},
	5: {Coins: 500},
	6: {Coins: 750},
	7: {Title: "[Ежедневный]"},
}

type claimRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// ClaimDaily computes the streak for today, pays out the day's reward and
// upserts today's daily login row with reward_claimed set. Claiming twice on
// one calendar day fails.
func (d *DailyController) ClaimDaily(ctx *gin.Context) {
	var req claimRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "user_id обязателен")
		return
	}

	now := time.Now()
	today := dateOnly(now)

	var last models.DailyLogin
	err := d.db.Where("user_id = ?", req.UserID).Order("login_date DESC").First(&last).Error
	currentStreak := 1
	if err == nil {
		lastDate := dateOnly(last.LoginDate)
		switch {
		case lastDate.Equal(today):
			if last.RewardClaimed {
				utils.Error(ctx, http.StatusBadRequest, "Награда уже получена сегодня")
				return
			}
			currentStreak = last.DayStreak
		case lastDate.Equal(today.AddDate(0, 0, -1)):
			currentStreak = last.DayStreak + 1
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	reward := dailyRewards[currentStreak]

	if reward.Coins > 0 {
		if err := d.db.Model(&models.User{}).Where("id = ?", req.UserID).
			Update("coins", gorm.Expr("coins + ?", reward.Coins)).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, err.Error())
			return
		}
	}

	if reward.Title != "" {
		var title models.Title
		if err := d.db.Where("name = ?", reward.Title).First(&title).Error; err == nil {
			// Idempotent: re-claiming a title the user already owns is a no-op.
			if err := d.db.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.UserTitle{UserID: req.UserID, TitleID: title.ID}).Error; err != nil {
				utils.Error(ctx, http.StatusInternalServerError, err.Error())
				return
			}
		}
	}

	record := models.DailyLogin{
		UserID:        req.UserID,
		LoginDate:     today,
		DayStreak:     currentStreak,
		RewardClaimed: true,
	}
	if err := d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "login_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"reward_claimed": true}),
	}).Create(&record).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	if err := setQuestProgress(d.db, req.UserID, models.QuestTypeDailyStreak, currentStreak); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	var user models.User
	if err := d.db.Select("coins").First(&user, req.UserID).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	message := fmt.Sprintf("День %d! ", currentStreak)
	if reward.Coins > 0 {
		message += fmt.Sprintf("Получено %d ТитулКоинов!", reward.Coins)
	}
	if reward.Title != "" {
		message += fmt.Sprintf(" Получен титул %s!", reward.Title)
	}

	var titleReward *string
	if reward.Title != "" {
		titleReward = &reward.Title
	}

	utils.Sugar.Infow("daily reward claimed", "user_id", req.UserID, "streak", currentStreak, "coins", reward.Coins)
	utils.Success(ctx, gin.H{
		"message":      message,
		"day_streak":   currentStreak,
		"coins_reward": reward.Coins,
		"title_reward": titleReward,
		"new_coins":    user.Coins,
	})
}
