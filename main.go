package main

import (
	"github.com/titulgame/backend/config"
	"github.com/titulgame/backend/models"
	"github.com/titulgame/backend/routes"
	"github.com/titulgame/backend/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Title{},
		&models.UserTitle{},
		&models.Quest{},
		&models.UserQuest{},
		&models.DailyLogin{},
		&models.ChatMessage{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
