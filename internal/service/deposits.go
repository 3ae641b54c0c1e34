package service

import (
	"ReferralApi/cmd/db"
	"ReferralApi/internal/models"
	"ReferralApi/pkg/logger"
	"ReferralApi/pkg/redis"
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	ErrInvalidAmount = errors.New("deposit amount must be positive")
	ErrUserNotFound  = errors.New("user not found")
)

// VipPromotionThreshold is the single deposit amount that promotes a fresh
// user from VIP 0 to VIP 1. Promotion never repeats and never goes higher.
const VipPromotionThreshold = 100

// RewardService distributes referral commissions and team bonuses for
// deposits. redisService is optional and only feeds the live rewards feed.
type RewardService struct {
	cfg          RewardConfig
	redisService *redis.RedisService
}

func NewRewardService(cfg RewardConfig, redisService *redis.RedisService) *RewardService {
	return &RewardService{
		cfg:          cfg,
		redisService: redisService,
	}
}

// DepositResult is the success payload of ProcessDeposit.
type DepositResult struct {
	Deposit models.Deposit `json:"deposit"`
	Rewards []Commission   `json:"rewards"`
}

// ProcessDeposit records a deposit for userID, credits the depositor,
// promotes VIP if the amount qualifies, pays multi-level commissions up the
// referrer chain and grants any newly-qualified team bonuses to the direct
// referrer. Everything from the deposit insert onward runs in one
// transaction: either the whole distribution commits or none of it does.
func (s *RewardService) ProcessDeposit(userID int64, amount float64) (*DepositResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	exists, err := models.CheckIfUserExistsByID(userID)
	if err != nil {
		return nil, logger.WrapError(err, "")
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	var result DepositResult
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return logger.WrapError(err, "")
		}

		dep := models.Deposit{
			UserID: userID,
			Amount: amount,
			Status: models.DepositStatusCompleted,
		}
		if err := tx.Create(&dep).Error; err != nil {
			return logger.WrapError(err, "")
		}

		// The depositor's own credit has no ledger row; the deposit is it.
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("balance", gorm.Expr("balance + ?", amount)).Error; err != nil {
			return logger.WrapError(err, "")
		}

		if user.VipLevel == 0 && amount >= VipPromotionThreshold {
			if err := tx.Model(&models.User{}).Where("id = ?", userID).
				Update("vip_level", 1).Error; err != nil {
				return logger.WrapError(err, "")
			}
		}

		chain, err := WalkAncestors(tx, userID)
		if err != nil {
			return logger.WrapError(err, "")
		}

		commissions := s.ComputeCommissions(amount, chain)
		for _, com := range commissions {
			if err := applyCommission(tx, com, userID, dep.ID); err != nil {
				return logger.WrapError(err, "")
			}
		}

		if user.ReferredBy != nil {
			if err := s.applyTeamBonuses(tx, *user.ReferredBy, time.Now()); err != nil {
				return logger.WrapError(err, "")
			}
		}

		result = DepositResult{Deposit: dep, Rewards: commissions}
		return nil
	})
	if err != nil {
		return nil, logger.WrapError(err, "")
	}

	s.publishRewards(context.Background(), &result)

	return &result, nil
}

// applyCommission credits one ancestor and appends its ledger row. Runs
// inside the caller's transaction so both happen or neither does.
func applyCommission(tx *gorm.DB, com Commission, depositorID, depositID int64) error {
	if err := tx.Model(&models.User{}).Where("id = ?", com.UserID).
		Update("balance", gorm.Expr("balance + ?", com.Amount)).Error; err != nil {
		return logger.WrapError(err, "")
	}

	reward := models.ReferralReward{
		UserID:         com.UserID,
		ReferredUserID: depositorID,
		DepositID:      depositID,
		RewardAmount:   com.Amount,
		RewardLevel:    com.Level,
	}
	if err := tx.Create(&reward).Error; err != nil {
		return logger.WrapError(err, "")
	}

	return nil
}

func (s *RewardService) applyTeamBonuses(tx *gorm.DB, referrerID int64, asOf time.Time) error {
	qualified, err := s.EvaluateTeamBonuses(tx, referrerID, asOf)
	if err != nil {
		return logger.WrapError(err, "")
	}

	for _, bonus := range qualified {
		if err := tx.Model(&models.User{}).Where("id = ?", referrerID).
			Update("balance", gorm.Expr("balance + ?", bonus.Reward)).Error; err != nil {
			return logger.WrapError(err, "")
		}

		if err := tx.Create(&models.TeamBonus{
			UserID:      referrerID,
			BonusAmount: bonus.Reward,
			TeamTotal:   bonus.Threshold,
			BonusType:   models.TeamBonusType24h,
		}).Error; err != nil {
			return logger.WrapError(err, "")
		}
	}

	return nil
}

type depositInput struct {
	UserID int64   `json:"userId" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func (i *depositInput) Validate() error {
	return validate.Struct(i)
}

// AddDeposit handles POST payments/deposit.
func (s *RewardService) AddDeposit(c *gin.Context) {
	var input depositInput
	if err := c.Bind(&input); err != nil {
		c.JSON(400, gin.H{"error": "Unable to unmarshal body"})
		return
	}

	if err := input.Validate(); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	result, err := s.ProcessDeposit(input.UserID, input.Amount)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			c.JSON(400, gin.H{"error": err.Error()})
		case errors.Is(err, ErrUserNotFound):
			c.JSON(404, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to process deposit for user %d: %v", input.UserID, err)
			c.Status(500)
		}
		return
	}

	c.JSON(200, result)
}

// GetUserDeposits handles GET users/:userID/deposits.
func GetUserDeposits(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid user id"})
		return
	}

	var deps []models.Deposit
	err = db.DB.Find(&deps, "user_id = ?", userID).Error
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	if len(deps) == 0 {
		c.String(404, "[]")
		return
	}

	c.JSON(200, deps)
}
