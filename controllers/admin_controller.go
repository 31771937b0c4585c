package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/titulgame/backend/models"
	"github.com/titulgame/backend/utils"
)

// onlineWindow is how recent a login has to be for a user to count as online.
const onlineWindow = 5 * time.Minute

// AdminController serves the coin-grant panel. Privilege is a single boolean
// on the user row; there is no role hierarchy.
type AdminController struct {
	db *gorm.DB
}

// NewAdminController creates an AdminController.
func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{db: db}
}

// isAdmin resolves the id to a user and checks the admin flag.
func (a *AdminController) isAdmin(id uint) bool {
	var user models.User
	if err := a.db.Select("is_admin").First(&user, id).Error; err != nil {
		return false
	}
	return user.IsAdmin
}

type adminUserView struct {
	ID               uint       `json:"id"`
	Username         string     `json:"username"`
	Coins            int        `json:"coins"`
	LastLogin        *time.Time `json:"last_login"`
	TimeSpentMinutes int        `json:"time_spent_minutes"`
	IsOnline         bool       `json:"is_online"`
}

// ListUsers returns every user with a derived is_online flag, online users
// first, then by login recency.
func (a *AdminController) ListUsers(ctx *gin.Context) {
	idStr := strings.TrimSpace(ctx.Query("admin_id"))
	if idStr == "" {
		utils.Error(ctx, http.StatusBadRequest, "admin_id обязателен")
		return
	}
	adminID, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, "admin_id обязателен")
		return
	}
	if !a.isAdmin(uint(adminID)) {
		utils.Error(ctx, http.StatusForbidden, "Доступ запрещен")
		return
	}

	var users []models.User
	if err := a.db.Find(&users).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	now := time.Now()
	views := make([]adminUserView, 0, len(users))
	for _, u := range users {
		online := u.LastLogin != nil && now.Sub(*u.LastLogin) < onlineWindow
		views = append(views, adminUserView{
			ID:               u.ID,
			Username:         u.Username,
			Coins:            u.Coins,
			LastLogin:        u.LastLogin,
			TimeSpentMinutes: u.TimeSpentMinutes,
			IsOnline:         online,
		})
	}

	sort.SliceStable(views, func(i, j int) bool {
		if views[i].IsOnline != views[j].IsOnline {
			return views[i].IsOnline
		}
		li, lj := views[i].LastLogin, views[j].LastLogin
		switch {
		case li == nil:
			return false
		case lj == nil:
			return true
		default:
			return li.After(*lj)
		}
	})

	utils.Success(ctx, gin.H{"users": views})
}

type grantRequest struct {
	AdminID uint `json:"admin_id" binding:"required"`
	UserID  uint `json:"user_id" binding:"required"`
	Coins   int  `json:"coins"`
}

// GrantCoins adds a signed amount to the target's balance. There is no floor
// at zero: deductions can push a balance negative. Positive grants advance
// admin_coins quests by the granted amount.
func (a *AdminController) GrantCoins(ctx *gin.Context) {
	var req grantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "admin_id и user_id обязательны")
		return
	}
	if !a.isAdmin(req.AdminID) {
		utils.Error(ctx, http.StatusForbidden, "Доступ запрещен")
		return
	}

	if err := a.db.Model(&models.User{}).Where("id = ?", req.UserID).
		Update("coins", gorm.Expr("coins + ?", req.Coins)).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	if req.Coins > 0 {
		if err := bumpQuestProgress(a.db, req.UserID, models.QuestTypeAdminCoins, req.Coins); err != nil {
			utils.Error(ctx, http.StatusInternalServerError, err.Error())
			return
		}
	}

	var target models.User
	if err := a.db.First(&target, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Пользователь не найден")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	verb := "выдано"
	amount := req.Coins
	if req.Coins < 0 {
		verb = "списано"
		amount = -req.Coins
	}

	utils.Sugar.Infow("admin coin grant", "admin_id", req.AdminID, "user_id", req.UserID, "amount", req.Coins)
	utils.Success(ctx, gin.H{
		"message":   fmt.Sprintf("Пользователю %s %s %d ТитулКоинов", target.Username, verb, amount),
		"new_coins": target.Coins,
	})
}
