package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/titulgame/backend/models"
	"github.com/titulgame/backend/utils"
)

// AuthController handles registration and login. No session or token is
// issued: the client keeps the returned user id and sends it with later
// requests.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// userPayload is the public slice of a user row returned by auth endpoints.
func userPayload(u models.User) gin.H {
	return gin.H{
		"id":       u.ID,
		"username": u.Username,
		"coins":    u.Coins,
		"is_admin": u.IsAdmin,
	}
}

// Register creates an account with 50 starting coins, grants the starter
// title when the catalog has one, and seeds the login quest as completed.
func (a *AuthController) Register(ctx *gin.Context) {
	var req credentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "Имя и пароль обязательны")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		utils.Error(ctx, http.StatusBadRequest, "Имя и пароль обязательны")
		return
	}
	if len([]rune(username)) < 3 {
		utils.Error(ctx, http.StatusBadRequest, "Имя должно быть минимум 3 символа")
		return
	}

	var existing models.User
	if err := a.db.Where("username = ?", username).First(&existing).Error; err == nil {
		utils.Error(ctx, http.StatusBadRequest, "Пользователь уже существует")
		return
	}

	now := time.Now()
	user := models.User{
		Username:     username,
		PasswordHash: utils.HashPassword(req.Password),
		Coins:        50,
		LastLogin:    &now,
	}
	if err := a.db.Create(&user).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	var newbie models.Title
	if err := a.db.Where("name = ?", models.StarterTitleName).First(&newbie).Error; err == nil {
		if err := a.db.Create(&models.UserTitle{UserID: user.ID, TitleID: newbie.ID}).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, err.Error())
			return
		}
	}

	// The login quest is complete the moment the account exists.
	var loginQuest models.Quest
	if err := a.db.Where("quest_type = ?", models.QuestTypeLogin).Order("id").First(&loginQuest).Error; err == nil {
		if err := a.db.Create(&models.UserQuest{
			UserID:    user.ID,
			QuestID:   loginQuest.ID,
			Progress:  1,
			Completed: true,
		}).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, err.Error())
			return
		}
	}

	utils.Sugar.Infow("user registered", "user_id", user.ID, "username", user.Username)
	utils.Success(ctx, gin.H{"user": userPayload(user)})
}

// Login checks credentials by matching username and password hash in one
// query and stamps last_login on success.
func (a *AuthController) Login(ctx *gin.Context) {
	var req credentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "Имя и пароль обязательны")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		utils.Error(ctx, http.StatusBadRequest, "Имя и пароль обязательны")
		return
	}

	var user models.User
	err := a.db.Where("username = ? AND password_hash = ?", username, utils.HashPassword(req.Password)).First(&user).Error
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, "Неверное имя или пароль")
		return
	}

	now := time.Now()
	if err := a.db.Model(&models.User{}).Where("id = ?", user.ID).Update("last_login", now).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	utils.Success(ctx, gin.H{"user": userPayload(user)})
}
