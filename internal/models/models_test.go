package models

import (
	"testing"

	"ReferralApi/cmd/db"

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
		&User{},
		&Deposit{},
		&ReferralReward{},
		&TeamBonus{},
	))

	db.DB = gdb
}

func createUser(t *testing.T, username, code string, referredBy *int64) *User {
	t.Helper()

	user := User{
		Username:     username,
		ReferralCode: code,
		ReferredBy:   referredBy,
	}
	require.NoError(t, db.DB.Create(&user).Error)
	return &user
}
