package controllers

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/titulgame/backend/models"
)

// dateOnly truncates t to local midnight. Daily login rows are keyed by
// calendar day, not by instant.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// streakStatus is the read path used by the profile view. It inspects the
// newest daily login row and reports the current streak plus whether a claim
// is open today. It intentionally does not look at reward_claimed: when the
// newest row is dated today the claim is reported closed no matter the flag,
// matching how the claim path behaves in that state.
func streakStatus(db *gorm.DB, userID uint, now time.Time) (int, bool, error) {
	var last models.DailyLogin
	err := db.Where("user_id = ?", userID).Order("login_date DESC").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, true, nil
	}
	if err != nil {
		return 0, false, err
	}

	today := dateOnly(now)
	lastDate := dateOnly(last.LoginDate)
	streak := last.DayStreak
	canClaim := false

	if lastDate.Before(today) {
		canClaim = true
		if !lastDate.Equal(today.AddDate(0, 0, -1)) {
			streak = 0
		}
	}

	return streak, canClaim, nil
}
