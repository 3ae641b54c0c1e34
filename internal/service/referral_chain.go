package service

import (
	"ReferralApi/cmd/db"
	"ReferralApi/internal/models"
	"ReferralApi/pkg/logger"
	"errors"

	"gorm.io/gorm"
)

// MaxReferralDepth caps how far up the referrer chain rewards are paid.
const MaxReferralDepth = 3

// ChainAncestor is one step of a depositor's referrer chain.
type ChainAncestor struct {
	UserID int64
	Level  int
}

// WalkAncestors follows referred_by pointers starting from userID, at most
// MaxReferralDepth levels up. The walk is recomputed fresh on every call.
// A referrer id that does not resolve to a stored user ends the walk
// without error; the chain is simply truncated at that point.
func WalkAncestors(tx *gorm.DB, userID int64) ([]ChainAncestor, error) {
	if tx == nil {
		tx = db.DB
	}

	user, err := models.GetUserByID(tx, userID)
	if err != nil {
		return nil, logger.WrapError(err, "")
	}

	var chain []ChainAncestor
	next := user.ReferredBy
	for level := 1; next != nil && level <= MaxReferralDepth; level++ {
		ancestor, err := models.GetUserByID(tx, *next)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break
			}
			return nil, logger.WrapError(err, "")
		}

		chain = append(chain, ChainAncestor{UserID: ancestor.ID, Level: level})
		next = ancestor.ReferredBy
	}

	return chain, nil
}
