package models

import (
	"ReferralApi/cmd/db"
	"ReferralApi/pkg/logger"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

const DepositStatusCompleted = "completed"

type Deposit struct {
	ID        int64 `gorm:"primaryKey,autoIncrement"`
	UserID    int64 `gorm:"index;not null;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Amount    float64
	Status    string
	CreatedAt time.Time `gorm:"index"`
}

// SumDirectTeamDeposits sums deposits made since the given time by users
// directly referred by referrerID. Deeper descendants are not counted.
func SumDirectTeamDeposits(tx *gorm.DB, referrerID int64, since time.Time) (float64, error) {
	if tx == nil {
		tx = db.DB
	}

	var sum sql.NullFloat64
	if err := tx.Model(&Deposit{}).
		Joins("JOIN users ON users.id = deposits.user_id").
		Where("users.referred_by = ? AND deposits.created_at > ?", referrerID, since).
		Select("SUM(deposits.amount)").
		Scan(&sum).Error; err != nil {
		return 0, logger.WrapError(err, "")
	}

	if sum.Valid {
		return sum.Float64, nil
	}

	return 0, nil
}
