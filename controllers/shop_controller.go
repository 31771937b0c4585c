package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/titulgame/backend/models"
	"github.com/titulgame/backend/utils"
)

// ShopController handles title purchases and sales. The balance check and
// the mutation are separate statements, so concurrent requests for the same
// user can race past the check; see DESIGN.md for why this is left open.
type ShopController struct {
	db *gorm.DB
}

// NewShopController creates a ShopController.
func NewShopController(db *gorm.DB) *ShopController {
	return &ShopController{db: db}
}

type shopRequest struct {
	UserID  uint `json:"user_id" binding:"required"`
	TitleID uint `json:"title_id" binding:"required"`
}

// BuyTitle debits the title price, records ownership and advances buy_title
// quests.
func (s *ShopController) BuyTitle(ctx *gin.Context) {
	var req shopRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "user_id и title_id обязательны")
		return
	}

	var user models.User
	if err := s.db.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Пользователь не найден")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	var title models.Title
	if err := s.db.First(&title, req.TitleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Титул не найден")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	var owned models.UserTitle
	if err := s.db.Where("user_id = ? AND title_id = ?", req.UserID, req.TitleID).First(&owned).Error; err == nil {
		utils.Error(ctx, http.StatusBadRequest, "Титул уже куплен")
		return
	}

	if user.Coins < title.Price {
		utils.Error(ctx, http.StatusBadRequest, "Недостаточно ТитулКоинов")
		return
	}

	if err := s.db.Model(&models.User{}).Where("id = ?", req.UserID).
		Update("coins", gorm.Expr("coins - ?", title.Price)).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.db.Create(&models.UserTitle{UserID: req.UserID, TitleID: req.TitleID}).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}
	if err := bumpQuestProgress(s.db, req.UserID, models.QuestTypeBuyTitle, 1); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	newCoins, err := s.reloadCoins(req.UserID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	utils.Sugar.Infow("title bought", "user_id", req.UserID, "title_id", req.TitleID, "price", title.Price)
	utils.Success(ctx, gin.H{
		"message":   fmt.Sprintf("Титул %s успешно куплен!", title.Name),
		"new_coins": newCoins,
	})
}

// SellTitle credits half of the catalog price (floored), removes ownership
// and advances sell_title quests. The starter title can never be sold.
func (s *ShopController) SellTitle(ctx *gin.Context) {
	var req shopRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "user_id и title_id обязательны")
		return
	}

	var owned models.UserTitle
	if err := s.db.Where("user_id = ? AND title_id = ?", req.UserID, req.TitleID).First(&owned).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, "Титул не куплен")
		return
	}

	var title models.Title
	if err := s.db.First(&title, req.TitleID).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	if title.Name == models.StarterTitleName {
		utils.Error(ctx, http.StatusForbidden, "Нельзя продать стартовый титул")
		return
	}

	sellPrice := title.Price / 2

	if err := s.db.Delete(&models.UserTitle{}, "user_id = ? AND title_id = ?", req.UserID, req.TitleID).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.db.Model(&models.User{}).Where("id = ?", req.UserID).
		Update("coins", gorm.Expr("coins + ?", sellPrice)).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}
	if err := bumpQuestProgress(s.db, req.UserID, models.QuestTypeSellTitle, 1); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	newCoins, err := s.reloadCoins(req.UserID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	utils.Sugar.Infow("title sold", "user_id", req.UserID, "title_id", req.TitleID, "credited", sellPrice)
	utils.Success(ctx, gin.H{
		"message":   fmt.Sprintf("Титул %s продан за %d ТитулКоинов!", title.Name, sellPrice),
		"new_coins": newCoins,
	})
}

func (s *ShopController) reloadCoins(userID uint) (int, error) {
	var user models.User
	if err := s.db.Select("coins").First(&user, userID).Error; err != nil {
		return 0, err
	}
	return user.Coins, nil
}
