package controllers_test

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/titulgame/backend/models"
)

func TestListUsersRequiresAdmin(t *testing.T) {
	db, r := newTestServer(t)
	seedCatalog(t, db)

	regular := createUser(t, db, "regular", 0, false)

	rr := doJSON(t, r, http.MethodGet, "/api/v1/admin/users?admin_id="+strconv.Itoa(int(regular.ID)), nil)
	if rr.Code != http.StatusForbidden {
		t.Errorf("non-admin status = %d, want 403", rr.Code)
	}

	rr = doJSON(t, r, http.MethodGet, "/api/v1/admin/users?admin_id=99999", nil)
	if rr.Code != http.StatusForbidden {
		t.Errorf("unknown admin status = %d, want 403", rr.Code)
	}

	rr = doJSON(t, r, http.MethodGet, "/api/v1/admin/users", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("missing admin_id status = %d, want 400", rr.Code)
	}
}

func TestListUsersOnlineOrdering(t *testing.T) {
	db, r := newTestServer(t)
	seedCatalog(t, db)

	admin := createUser(t, db, "boss", 0, true)

	// offline: logged in an hour ago; online: logged in just now.
	offline := createUser(t, db, "offline", 0, false)
	hourAgo := time.Now().Add(-time.Hour)
	db.Model(&models.User{}).Where("id = ?", offline.ID).Update("last_login", hourAgo)

	online := createUser(t, db, "online", 0, false)
	now := time.Now()
	db.Model(&models.User{}).Where("id = ?", online.ID).Update("last_login", now)

	rr := doJSON(t, r, http.MethodGet, "/api/v1/admin/users?admin_id="+strconv.Itoa(int(admin.ID)), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", rr.Code, rr.Body.String())
	}

	body := decodeBody(t, rr)
	users := body["users"].([]interface{})
	if len(users) != 3 {
		t.Fatalf("users = %d, want 3", len(users))
	}

	first := users[0].(map[string]interface{})
	if first["username"] != "online" || !first["is_online"].(bool) {
		t.Errorf("first user = %v online=%v, want the online user first", first["username"], first["is_online"])
	}
	last := users[len(users)-1].(map[string]interface{})
	if last["is_online"].(bool) {
		t.Errorf("last user must be offline, got %v", last["username"])
	}
}

func TestGrantCoins(t *testing.T) {
	db, r := newTestServer(t)
	seedCatalog(t, db)

	admin := createUser(t, db, "boss", 0, true)
	target := createUser(t, db, "lucky", 10, false)

	rr := doJSON(t, r, http.MethodPost, "/api/v1/admin/coins", gin.H{
		"admin_id": admin.ID,
		"user_id":  target.ID,
		"coins":    100,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("grant status = %d; body %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["new_coins"].(float64) != 110 {
		t.Errorf("new_coins = %v, want 110", body["new_coins"])
	}
	if body["message"] != "Пользователю lucky выдано 100 ТитулКоинов" {
		t.Errorf("unexpected message %q", body["message"])
	}
}

func TestGrantCoinsDeductionHasNoFloor(t *testing.T) {
	db, r := newTestServer(t)
	seedCatalog(t, db)

	admin := createUser(t, db, "boss", 0, true)
	target := createUser(t, db, "victim", 10, false)

	rr := doJSON(t, r, http.MethodPost, "/api/v1/admin/coins", gin.H{
		"admin_id": admin.ID,
		"user_id":  target.ID,
		"coins":    -20,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("deduction status = %d; body %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	// Current behavior: balances may go negative, there is no floor at zero.
	if body["new_coins"].(float64) != -10 {
		t.Errorf("new_coins = %v, want -10", body["new_coins"])
	}
	if body["message"] != "Пользователю victim списано 20 ТитулКоинов" {
		t.Errorf("unexpected message %q", body["message"])
	}
}

func TestGrantCoinsAdvancesQuestOnlyWhenPositive(t *testing.T) {
	db, r := newTestServer(t)
	seedCatalog(t, db)

	admin := createUser(t, db, "boss", 0, true)
	target := createUser(t, db, "player", 0, false)

	var quest models.Quest
	if err := db.Where("quest_type = ?", models.QuestTypeAdminCoins).First(&quest).Error; err != nil {
		t.Fatalf("lookup admin quest: %v", err)
	}
	if err := db.Create(&models.UserQuest{UserID: target.ID, QuestID: quest.ID}).Error; err != nil {
		t.Fatalf("seed user quest: %v", err)
	}

	doJSON(t, r, http.MethodPost, "/api/v1/admin/coins", gin.H{
		"admin_id": admin.ID, "user_id": target.ID, "coins": 250,
	})

	var uq models.UserQuest
	db.Where("user_id = ? AND quest_id = ?", target.ID, quest.ID).First(&uq)
	if uq.Progress != 250 {
		t.Errorf("admin_coins quest progress = %d, want 250 (bumped by amount)", uq.Progress)
	}

	doJSON(t, r, http.MethodPost, "/api/v1/admin/coins", gin.H{
		"admin_id": admin.ID, "user_id": target.ID, "coins": -50,
	})

	db.Where("user_id = ? AND quest_id = ?", target.ID, quest.ID).First(&uq)
	if uq.Progress != 250 {
		t.Errorf("progress after deduction = %d, want unchanged 250", uq.Progress)
	}
}

func TestGrantCoinsValidation(t *testing.T) {
	db, r := newTestServer(t)
	seedCatalog(t, db)

	admin := createUser(t, db, "boss", 0, true)

	rr := doJSON(t, r, http.MethodPost, "/api/v1/admin/coins", gin.H{"admin_id": admin.ID})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("missing user_id status = %d, want 400", rr.Code)
	}

	regular := createUser(t, db, "regular", 0, false)
	rr = doJSON(t, r, http.MethodPost, "/api/v1/admin/coins", gin.H{
		"admin_id": regular.ID, "user_id": admin.ID, "coins": 10,
	})
	if rr.Code != http.StatusForbidden {
		t.Errorf("non-admin grant status = %d, want 403", rr.Code)
	}
}
