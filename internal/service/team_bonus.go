package service

import (
	"ReferralApi/internal/models"
	"ReferralApi/pkg/logger"
	"time"

	"gorm.io/gorm"
)

// TeamBonusWindow is the rolling span used both for team volume
// aggregation and for bonus de-duplication.
const TeamBonusWindow = 24 * time.Hour

// QualifiedBonus is a team bonus tier newly payable to a referrer.
type QualifiedBonus struct {
	Threshold float64
	Reward    float64
	TeamTotal float64
}

// EvaluateTeamBonuses returns the tiers whose threshold is met by the
// referrer's direct team volume in the window trailing asOf and that have
// not been granted within that window yet. Tiers are evaluated
// independently, so several can qualify at once. Read-only; applying the
// bonuses is the deposit processor's job.
func (s *RewardService) EvaluateTeamBonuses(tx *gorm.DB, referrerID int64, asOf time.Time) ([]QualifiedBonus, error) {
	since := asOf.Add(-TeamBonusWindow)

	teamTotal, err := models.SumDirectTeamDeposits(tx, referrerID, since)
	if err != nil {
		return nil, logger.WrapError(err, "")
	}

	var qualified []QualifiedBonus
	for _, tier := range s.cfg.BonusTiers {
		if teamTotal < tier.Threshold {
			continue
		}

		granted, err := models.BonusAlreadyGranted(tx, referrerID, tier.Threshold, since)
		if err != nil {
			return nil, logger.WrapError(err, "")
		}
		if granted {
			continue
		}

		qualified = append(qualified, QualifiedBonus{
			Threshold: tier.Threshold,
			Reward:    tier.Reward,
			TeamTotal: teamTotal,
		})
	}

	return qualified, nil
}
