package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/titulgame/backend/models"
	"github.com/titulgame/backend/utils"
)

const chatCachePrefix = "cache:chat:list:"

// ChatController handles the global chat feed.
type ChatController struct {
	db *gorm.DB
}

// NewChatController creates a ChatController.
func NewChatController(db *gorm.DB) *ChatController {
	return &ChatController{db: db}
}

type messageView struct {
	ID        uint      `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
	UserID    uint      `json:"user_id"`
}

// ListMessages returns the most recent ?limit= messages (default 50) in
// chronological order. The feed is fetched newest-first and reversed so the
// LIMIT trims the oldest, not the newest.
func (c *ChatController) ListMessages(ctx *gin.Context) {
	limit := 50
	if v := strings.TrimSpace(ctx.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	cacheKey := fmt.Sprintf("%slimit=%d", chatCachePrefix, limit)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var messages []messageView
	err := c.db.Table("chat_messages AS cm").
		Select("cm.id, cm.message, cm.created_at, u.username, u.id AS user_id").
		Joins("JOIN users u ON cm.user_id = u.id").
		Order("cm.created_at DESC").
		Limit(limit).
		Scan(&messages).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	payload := gin.H{"messages": messages}
	if b, err := json.Marshal(payload); err == nil {
		utils.CacheSetBytes(cacheKey, b, time.Minute)
	}
	utils.Success(ctx, payload)
}

type postMessageRequest struct {
	UserID  uint   `json:"user_id"`
	Message string `json:"message"`
}

// PostMessage persists a chat line (≤500 chars), advances chat_messages
// quests and returns the stored message with its author.
func (c *ChatController) PostMessage(ctx *gin.Context) {
	var req postMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "user_id и message обязательны")
		return
	}

	message := strings.TrimSpace(req.Message)
	if req.UserID == 0 || message == "" {
		utils.Error(ctx, http.StatusBadRequest, "user_id и message обязательны")
		return
	}
	if len([]rune(message)) > 500 {
		utils.Error(ctx, http.StatusBadRequest, "Сообщение слишком длинное (макс. 500 символов)")
		return
	}
	message = utils.Sanitize(message)

	var author models.User
	if err := c.db.First(&author, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Пользователь не найден")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	msg := models.ChatMessage{
		UserID:    req.UserID,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := c.db.Create(&msg).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	if err := bumpQuestProgress(c.db, req.UserID, models.QuestTypeChatMessage, 1); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	utils.InvalidateByPrefix(chatCachePrefix)

	utils.Success(ctx, messageView{
		ID:        msg.ID,
		Message:   msg.Message,
		CreatedAt: msg.CreatedAt,
		Username:  author.Username,
		UserID:    author.ID,
	})
}
