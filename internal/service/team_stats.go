package service

import (
	"ReferralApi/cmd/db"
	"ReferralApi/pkg/logger"
	"database/sql"

	"gorm.io/gorm"
)

// TeamSize counts every user in the recursive downstream tree of userID
// that reached at least VIP 1. The root user is not counted.
func TeamSize(tx *gorm.DB, userID int64) (int64, error) {
	if tx == nil {
		tx = db.DB
	}

	var count int64
	err := tx.Raw(`
		WITH RECURSIVE team AS (
			SELECT id, referred_by, vip_level FROM users WHERE id = ?
			UNION ALL
			SELECT u.id, u.referred_by, u.vip_level FROM users u
			INNER JOIN team t ON u.referred_by = t.id
		)
		SELECT COUNT(*) FROM team WHERE vip_level >= 1 AND id != ?`,
		userID, userID).Scan(&count).Error
	if err != nil {
		return 0, logger.WrapError(err, "")
	}

	return count, nil
}

// TeamTotalDeposits sums all deposits ever made by the recursive downstream
// tree of userID, excluding the root user's own deposits.
func TeamTotalDeposits(tx *gorm.DB, userID int64) (float64, error) {
	if tx == nil {
		tx = db.DB
	}

	var sum sql.NullFloat64
	err := tx.Raw(`
		WITH RECURSIVE team AS (
			SELECT id FROM users WHERE id = ?
			UNION ALL
			SELECT u.id FROM users u
			INNER JOIN team t ON u.referred_by = t.id
		)
		SELECT SUM(d.amount) FROM deposits d
		WHERE d.user_id IN (SELECT id FROM team WHERE id != ?)`,
		userID, userID).Scan(&sum).Error
	if err != nil {
		return 0, logger.WrapError(err, "")
	}

	if sum.Valid {
		return sum.Float64, nil
	}

	return 0, nil
}
