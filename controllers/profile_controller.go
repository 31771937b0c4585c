package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/titulgame/backend/models"
	"github.com/titulgame/backend/utils"
)

// ProfileController serves the aggregate profile view: the user row, the
// title catalog annotated with ownership, the quest catalog annotated with
// progress, and the daily streak state.
type ProfileController struct {
	db *gorm.DB
}

// NewProfileController creates a ProfileController.
func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{db: db}
}

type titleView struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Color     string `json:"color"`
	IsLimited bool   `json:"is_limited"`
	Owned     bool   `json:"owned"`
}

type questView struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Reward      int    `json:"reward"`
	QuestType   string `json:"quest_type"`
	TargetValue int    `json:"target_value"`
	Progress    int    `json:"progress"`
	Completed   bool   `json:"completed"`
}

// GetProfile returns the full profile aggregate for ?user_id=.
func (p *ProfileController) GetProfile(ctx *gin.Context) {
	idStr := strings.TrimSpace(ctx.Query("user_id"))
	if idStr == "" {
		utils.Error(ctx, http.StatusBadRequest, "user_id обязателен")
		return
	}
	userID, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, "user_id обязателен")
		return
	}

	var user models.User
	if err := p.db.First(&user, uint(userID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Пользователь не найден")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	var titles []titleView
	err = p.db.Table("titles AS t").
		Select("t.id, t.name, t.price, t.color, t.is_limited, ut.id IS NOT NULL AS owned").
		Joins("LEFT JOIN user_titles ut ON t.id = ut.title_id AND ut.user_id = ?", user.ID).
		Order("t.display_order").
		Scan(&titles).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	type questRow struct {
		ID          uint
		Title       string
		Description string
		Reward      int
		QuestType   string
		TargetValue int
		RawProgress int
		Completed   bool
	}
	var rows []questRow
	err = p.db.Table("quests AS q").
		Select("q.id, q.title, q.description, q.reward, q.quest_type, q.target_value, COALESCE(uq.progress, 0) AS raw_progress, COALESCE(uq.completed, FALSE) AS completed").
		Joins("LEFT JOIN user_quests uq ON q.id = uq.quest_id AND uq.user_id = ?", user.ID).
		Order("q.display_order").
		Scan(&rows).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	quests := make([]questView, 0, len(rows))
	for _, r := range rows {
		quests = append(quests, questView{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Reward:      r.Reward,
			QuestType:   r.QuestType,
			TargetValue: r.TargetValue,
			Progress:    progressPercent(r.RawProgress, r.TargetValue),
			Completed:   r.Completed,
		})
	}

	streak, canClaim, err := streakStatus(p.db, user.ID, time.Now())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	utils.Success(ctx, gin.H{
		"user": gin.H{
			"id":                 user.ID,
			"username":           user.Username,
			"coins":              user.Coins,
			"is_admin":           user.IsAdmin,
			"time_spent_minutes": user.TimeSpentMinutes,
		},
		"titles":          titles,
		"quests":          quests,
		"daily_streak":    streak,
		"can_claim_daily": canClaim,
	})
}

// progressPercent converts a raw counter into a 0-100 percentage against the
// quest target, guarding a zero target.
func progressPercent(progress, target int) int {
	if target <= 0 {
		return 0
	}
	pct := progress * 100 / target
	if pct > 100 {
		return 100
	}
	return pct
}
