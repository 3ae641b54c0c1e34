package service

import (
	"testing"
	"time"

	"ReferralApi/cmd/db"
	"ReferralApi/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Deposit{},
		&models.ReferralReward{},
		&models.TeamBonus{},
	))

	db.DB = gdb
}

func newTestService() *RewardService {
	return NewRewardService(DefaultRewardConfig(), nil)
}

func createUser(t *testing.T, username, code string, referredBy *int64) *models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		ReferralCode: code,
		ReferredBy:   referredBy,
	}
	require.NoError(t, db.DB.Create(&user).Error)
	return &user
}

func createDeposit(t *testing.T, userID int64, amount float64, createdAt time.Time) {
	t.Helper()

	dep := models.Deposit{
		UserID:    userID,
		Amount:    amount,
		Status:    models.DepositStatusCompleted,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.DB.Create(&dep).Error)
}

func reloadUser(t *testing.T, userID int64) *models.User {
	t.Helper()

	var user models.User
	require.NoError(t, db.DB.First(&user, userID).Error)
	return &user
}
