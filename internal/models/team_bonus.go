package models

import (
	"ReferralApi/cmd/db"
	"ReferralApi/pkg/logger"
	"time"

	"gorm.io/gorm"
)

const TeamBonusType24h = "24h_bonus"

// TeamBonus is both the ledger row for a paid team bonus and the
// de-duplication record for the rolling window: TeamTotal stores the
// crossed tier threshold, and a (UserID, TeamTotal) row younger than the
// window blocks a second grant of the same tier.
type TeamBonus struct {
	ID          int64 `gorm:"primaryKey,autoIncrement"`
	UserID      int64 `gorm:"index;not null"`
	BonusAmount float64
	TeamTotal   float64
	BonusType   string
	CreatedAt   time.Time
}

func BonusAlreadyGranted(tx *gorm.DB, referrerID int64, threshold float64, since time.Time) (bool, error) {
	if tx == nil {
		tx = db.DB
	}

	var exists bool
	err := tx.Model(&TeamBonus{}).
		Select("count(*) > 0").
		Where("user_id = ? AND team_total = ? AND created_at > ?", referrerID, threshold, since).
		Scan(&exists).Error
	if err != nil {
		return true, logger.WrapError(err, "")
	}

	return exists, nil
}
