package controllers

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/titulgame/backend/models"
)

func openStreakDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.DailyLogin{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func plantLogin(t *testing.T, db *gorm.DB, userID uint, day time.Time, streak int) {
	t.Helper()
	row := models.DailyLogin{UserID: userID, LoginDate: dateOnly(day), DayStreak: streak, RewardClaimed: true}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("plant login: %v", err)
	}
}

func TestStreakStatus(t *testing.T) {
	now := time.Now()

	t.Run("no history", func(t *testing.T) {
		db := openStreakDB(t)
		streak, canClaim, err := streakStatus(db, 1, now)
		if err != nil {
			t.Fatal(err)
		}
		if streak != 0 || !canClaim {
			t.Errorf("got streak=%d canClaim=%v, want 0/true", streak, canClaim)
		}
	})

	t.Run("claimed today", func(t *testing.T) {
		db := openStreakDB(t)
		plantLogin(t, db, 1, now, 4)
		streak, canClaim, err := streakStatus(db, 1, now)
		if err != nil {
			t.Fatal(err)
		}
		if streak != 4 || canClaim {
			t.Errorf("got streak=%d canClaim=%v, want 4/false", streak, canClaim)
		}
	})

	t.Run("claimed yesterday keeps streak", func(t *testing.T) {
		db := openStreakDB(t)
		plantLogin(t, db, 1, now.AddDate(0, 0, -1), 4)
		streak, canClaim, err := streakStatus(db, 1, now)
		if err != nil {
			t.Fatal(err)
		}
		if streak != 4 || !canClaim {
			t.Errorf("got streak=%d canClaim=%v, want 4/true", streak, canClaim)
		}
	})

	t.Run("two day gap resets", func(t *testing.T) {
		db := openStreakDB(t)
		plantLogin(t, db, 1, now.AddDate(0, 0, -2), 4)
		streak, canClaim, err := streakStatus(db, 1, now)
		if err != nil {
			t.Fatal(err)
		}
		if streak != 0 || !canClaim {
			t.Errorf("got streak=%d canClaim=%v, want 0/true", streak, canClaim)
		}
	})

	t.Run("other users do not interfere", func(t *testing.T) {
		db := openStreakDB(t)
		plantLogin(t, db, 2, now, 7)
		streak, canClaim, err := streakStatus(db, 1, now)
		if err != nil {
			t.Fatal(err)
		}
		if streak != 0 || !canClaim {
			t.Errorf("got streak=%d canClaim=%v, want 0/true", streak, canClaim)
		}
	})
}

func TestProgressPercent(t *testing.T) {
	cases := []struct {
		progress, target, want int
	}{
		{0, 10, 0},
		{5, 10, 50},
		{10, 10, 100},
		{45, 10, 100},
		{1, 3, 33},
		{7, 0, 0},
	}
	for _, tc := range cases {
		if got := progressPercent(tc.progress, tc.target); got != tc.want {
			t.Errorf("progressPercent(%d, %d) = %d, want %d", tc.progress, tc.target, got, tc.want)
		}
	}
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	ts := time.Date(2025, 6, 15, 23, 45, 12, 999, loc)
	day := dateOnly(ts)
	if day.Hour() != 0 || day.Minute() != 0 || day.Second() != 0 || day.Nanosecond() != 0 {
		t.Errorf("dateOnly left time-of-day: %v", day)
	}
	if day.Year() != 2025 || day.Month() != time.June || day.Day() != 15 {
		t.Errorf("dateOnly changed the calendar day: %v", day)
	}
}
