package service

import "math"

// RewardConfig holds the commission rate and team bonus tier tables. The
// tables are passed in at construction so they stay immutable for the
// lifetime of a RewardService.
type RewardConfig struct {
	// CommissionRates[i] is the rate paid to the ancestor at level i+1.
	CommissionRates []float64
	// BonusTiers must be ordered by ascending threshold.
	BonusTiers []BonusTier
}

// BonusTier maps a rolling 24h direct-team volume threshold to a flat reward.
type BonusTier struct {
	Threshold float64
	Reward    float64
}

func DefaultRewardConfig() RewardConfig {
	return RewardConfig{
		CommissionRates: []float64{0.16, 0.03, 0.02},
		BonusTiers: []BonusTier{
			{Threshold: 2000, Reward: 12},
			{Threshold: 5000, Reward: 40},
			{Threshold: 10000, Reward: 200},
			{Threshold: 20000, Reward: 500},
			{Threshold: 50000, Reward: 1000},
			{Threshold: 100000, Reward: 2500},
			{Threshold: 200000, Reward: 5500},
		},
	}
}

// Commission is a reward computed for one ancestor of a depositor.
type Commission struct {
	UserID int64   `json:"referrerId"`
	Level  int     `json:"level"`
	Amount float64 `json:"amount"`
}

// RoundMoney rounds to the ledger's two decimal places, half to even.
func RoundMoney(amount float64) float64 {
	return math.RoundToEven(amount*100) / 100
}

// ComputeCommissions computes the per-level rewards for a deposit amount
// and an ancestor chain. Pure: no storage access, no mutation.
func (s *RewardService) ComputeCommissions(amount float64, chain []ChainAncestor) []Commission {
	var commissions []Commission
	for _, ancestor := range chain {
		if ancestor.Level < 1 || ancestor.Level > len(s.cfg.CommissionRates) {
			continue
		}

		commissions = append(commissions, Commission{
			UserID: ancestor.UserID,
			Level:  ancestor.Level,
			Amount: RoundMoney(amount * s.cfg.CommissionRates[ancestor.Level-1]),
		})
	}

	return commissions
}
