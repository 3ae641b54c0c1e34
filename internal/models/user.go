package models

import (
	"ReferralApi/cmd/db"
	"ReferralApi/pkg/logger"
	"math/rand"
	"time"

	"gorm.io/gorm"
)

const ReferralCodeLength = 8

const referralCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type User struct {
	ID           int64  `gorm:"primaryKey,autoIncrement"`
	Username     string `gorm:"unique"`
	ReferralCode string `gorm:"uniqueIndex"`
	ReferredBy   *int64 `gorm:"index"`
	Balance      float64
	VipLevel     int
	CreatedAt    time.Time
}

func CheckIfUserExistsByID(userID int64) (bool, error) {
	var exists bool
	err := db.DB.Model(&User{}).
		Select("count(*) > 0").
		Where("id = ?", userID).
		Scan(&exists).Error
	if err != nil {
		return true, logger.WrapError(err, "")
	}

	return exists, nil
}

func CheckIfUserExistsByUsername(username string) (bool, error) {
	var exists bool

	err := db.DB.Model(&User{}).
		Select("count(*) > 0").
		Where("username = ?", username).
		Scan(&exists).Error
	if err != nil {
		return true, logger.WrapError(err, "")
	}

	return exists, nil
}

// GetUserByID returns the user or a wrapped gorm.ErrRecordNotFound.
func GetUserByID(tx *gorm.DB, userID int64) (*User, error) {
	if tx == nil {
		tx = db.DB
	}

	var user User
	if err := tx.First(&user, userID).Error; err != nil {
		return nil, logger.WrapError(err, "")
	}

	return &user, nil
}

func GetUserByUsername(tx *gorm.DB, username string) (*User, error) {
	if tx == nil {
		tx = db.DB
	}

	var user User
	if err := tx.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, logger.WrapError(err, "")
	}

	return &user, nil
}

func GetUserByReferralCode(tx *gorm.DB, code string) (*User, error) {
	if tx == nil {
		tx = db.DB
	}

	var user User
	if err := tx.Where("referral_code = ?", code).First(&user).Error; err != nil {
		return nil, logger.WrapError(err, "")
	}

	return &user, nil
}

// GenerateReferralCode returns a random code not yet assigned to any user.
func GenerateReferralCode(tx *gorm.DB) (string, error) {
	if tx == nil {
		tx = db.DB
	}

	for {
		code := randomReferralCode()

		var exists bool
		err := tx.Model(&User{}).
			Select("count(*) > 0").
			Where("referral_code = ?", code).
			Scan(&exists).Error
		if err != nil {
			return "", logger.WrapError(err, "")
		}

		if !exists {
			return code, nil
		}
	}
}

func randomReferralCode() string {
	code := make([]byte, ReferralCodeLength)
	for i := range code {
		code[i] = referralCodeCharset[rand.Intn(len(referralCodeCharset))]
	}
	return string(code)
}
