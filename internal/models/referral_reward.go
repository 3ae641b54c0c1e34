package models

import (
	"ReferralApi/cmd/db"
	"ReferralApi/pkg/logger"
	"time"

	"gorm.io/gorm"
)

// ReferralReward is the ledger row backing a referral commission credit.
// UserID is the beneficiary, ReferredUserID the depositor whose deposit
// triggered the reward.
type ReferralReward struct {
	ID             int64 `gorm:"primaryKey,autoIncrement"`
	UserID         int64 `gorm:"index;not null"`
	ReferredUserID int64 `gorm:"not null"`
	DepositID      int64 `gorm:"index;not null"`
	RewardAmount   float64
	RewardLevel    int
	CreatedAt      time.Time
}

func GetUserRecentRewards(tx *gorm.DB, userID int64, limit int) ([]ReferralReward, error) {
	if tx == nil {
		tx = db.DB
	}

	var rewards []ReferralReward
	err := tx.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rewards).Error
	if err != nil {
		return nil, logger.WrapError(err, "")
	}

	return rewards, nil
}
