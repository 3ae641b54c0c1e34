package main

import (
	"ReferralApi/cmd/db"
	"ReferralApi/internal/models"
	"ReferralApi/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := db.Init(); err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// dropTables()
	createTables()

	logger.Info("Migrated.")
}

func dropTables() {
	db.DB.Migrator().DropTable(
		&models.User{},
		&models.Deposit{},
		&models.ReferralReward{},
		&models.TeamBonus{},
	)
}

func createTables() {
	err := db.DB.AutoMigrate(
		&models.User{},
		&models.Deposit{},
		&models.ReferralReward{},
		&models.TeamBonus{},
	)
	if err != nil {
		logger.Fatal("%v", err)
	}
}
