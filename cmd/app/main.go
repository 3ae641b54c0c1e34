package main

import (
	"ReferralApi/cmd/db"
	"ReferralApi/internal/app"
	"ReferralApi/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional, variables may come from the environment directly
	_ = godotenv.Load()

	if err := db.Init(); err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	app.Start()
}
